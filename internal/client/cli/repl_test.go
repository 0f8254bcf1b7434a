package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) ForgotPassword(ctx context.Context) error     { return f.record("forgot") }
func (f *fakeExec) ChangePassword(ctx context.Context) error     { return f.record("changepw") }
func (f *fakeExec) List(ctx context.Context) error               { return f.record("list") }
func (f *fakeExec) Show(ctx context.Context) error               { return f.record("show") }
func (f *fakeExec) AddEvent(ctx context.Context) error           { return f.record("addevent") }
func (f *fakeExec) EditEvent(ctx context.Context) error          { return f.record("editevent") }
func (f *fakeExec) DeleteEvent(ctx context.Context) error        { return f.record("delevent") }
func (f *fakeExec) RegisterForEvent(ctx context.Context) error   { return f.record("reg") }
func (f *fakeExec) CancelRegistration(ctx context.Context) error { return f.record("cancelreg") }
func (f *fakeExec) MyRegistrations(ctx context.Context) error    { return f.record("myregs") }
func (f *fakeExec) SetReminder(ctx context.Context) error        { return f.record("remind") }
func (f *fakeExec) CancelReminder(ctx context.Context) error     { return f.record("cancelremind") }
func (f *fakeExec) MyReminders(ctx context.Context) error        { return f.record("myreminders") }
func (f *fakeExec) Dashboard(ctx context.Context) error          { return f.record("dashboard") }

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"show",
		"reg",
		"myregs",
		"remind",
		"dashboard",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "show", "reg", "myregs", "remind", "dashboard"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_AdminCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("addevent\neditevent\ndelevent\nquit\n")
	exec := &fakeExec{loggedIn: true, admin: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"addevent", "editevent", "delevent"}
	if len(exec.calls) != len(want) {
		t.Fatalf("got calls %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("got calls %v, want %v", exec.calls, want)
		}
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("list\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("got calls %v", exec.calls)
	}
}
