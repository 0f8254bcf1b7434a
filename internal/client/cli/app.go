package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"eventmanager/internal/api"
	"eventmanager/internal/client/config"
	"eventmanager/internal/client/services"
	"eventmanager/internal/localstore"
	"eventmanager/internal/models"
	"eventmanager/internal/prefs"
	"eventmanager/internal/session"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config       *config.Config
	authService  services.AuthService
	eventService services.EventService
	session      *session.Manager
	prefs        prefs.Store
	currentUser  *models.Account
	Mode         Mode
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	p, err := prefs.OpenSQLite(ctx, c.PrefsDSN)
	if err != nil {
		log.Printf("error initializing preference store: %s", err.Error())
		return nil, err
	}

	store := localstore.New(p)
	sess := session.NewManager(p)
	apiClient := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)

	as := services.NewAuthService(apiClient, store, sess)
	es := services.NewEventService(apiClient, store)

	app := &App{
		config:       c,
		authService:  as,
		eventService: es,
		session:      sess,
		prefs:        p,
		reader:       bufio.NewReader(os.Stdin),
	}

	app.restoreSession(ctx, apiClient)
	return app, nil
}

// restoreSession resumes a previous login: if the stored access token is
// still live it is reinstalled on the API client, and the local account
// snapshot becomes the current user.
func (a *App) restoreSession(ctx context.Context, apiClient *api.Client) {
	loggedIn, err := a.session.IsLoggedIn(ctx)
	if err != nil || !loggedIn {
		return
	}

	expired, err := a.session.AccessTokenExpired(ctx, time.Now())
	if err == nil && !expired {
		token, err := a.session.AccessToken(ctx)
		if err == nil && token != "" {
			apiClient.SetToken(token)
		}
	}

	acc, err := a.authService.CurrentUser(ctx)
	if err == nil && acc != nil {
		a.currentUser = acc
		log.Printf("Resumed session for %s", acc.Email)
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.prefs.Close(); err != nil {
			log.Printf("error closing preference store: %s", err.Error())
		}
	}()

	log.Println("Welcome to the Event Manager CLI (type 'help' for commands)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.currentUser != nil
}

func (a *App) isAdmin() bool {
	return a.currentUser != nil && a.currentUser.IsAdmin()
}

func (a *App) getStatus() string {
	s := ""
	if a.currentUser != nil {
		s = a.currentUser.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
