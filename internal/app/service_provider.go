package app

import (
	"context"

	authAPI "issue_tracker/internal/api/auth"
	issueAPI "issue_tracker/internal/api/issue"
	"issue_tracker/internal/access"
	"issue_tracker/internal/config"
	"issue_tracker/internal/config/env"
	"issue_tracker/internal/repository"
	"issue_tracker/internal/repository/issue_repo"
	"issue_tracker/internal/repository/user_repo"
	"issue_tracker/internal/service"
	"issue_tracker/internal/service/auth"
	"issue_tracker/internal/service/issue"
	"issue_tracker/internal/session"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type ServiceProvider struct {
	// App and logging
	appCfg config.AppConfig
	logger *logrus.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Session bits
	sessionCfg config.SessionConfig
	sessions   *session.Manager
	gate       *access.Gate

	// User bits
	userRepo repository.UserRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// Issue bits
	issueRepo repository.IssueRepository
	issueServ service.IssueService
	issueHand *issueAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) AppCfg() config.AppConfig {
	if sp.appCfg == nil {
		cfg, err := env.NewAppConfig()
		if err != nil {
			panic("failed to get app config: " + err.Error())
		}
		sp.appCfg = cfg
	}
	return sp.appCfg
}

func (sp *ServiceProvider) Logger() *logrus.Logger {
	if sp.logger == nil {
		sp.logger = newLogger(sp.AppCfg())
	}
	return sp.logger
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig(sp.AppCfg())
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) Sessions() *session.Manager {
	if sp.sessions == nil {
		sp.sessions = session.NewManager(sp.SessionCfg(), sp.Logger().WithField("component", "session"))
	}
	return sp.sessions
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) IssueRepo(ctx context.Context) repository.IssueRepository {
	if sp.issueRepo == nil {
		sp.issueRepo = issue_repo.NewIssueRepository(sp.DBClient(ctx))
	}
	return sp.issueRepo
}

func (sp *ServiceProvider) Gate(ctx context.Context) *access.Gate {
	if sp.gate == nil {
		sp.gate = access.NewGate(sp.Sessions(), sp.UserRepo(ctx), sp.Logger().WithField("component", "access"))
	}
	return sp.gate
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.Sessions(), sp.Logger())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:       sp.AuthService(ctx),
			Gate:       sp.Gate(ctx),
			SignInPath: sp.HTTPCfg().SignInPath(),
			Log:        sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) IssueService(ctx context.Context) service.IssueService {
	if sp.issueServ == nil {
		sp.issueServ = issue.NewService(sp.TXManager(ctx), sp.IssueRepo(ctx), sp.Gate(ctx), sp.Logger())
	}
	return sp.issueServ
}

func (sp *ServiceProvider) IssueHandler(ctx context.Context) *issueAPI.Handler {
	if sp.issueHand == nil {
		sp.issueHand = issueAPI.NewHandler(issueAPI.HandlerDeps{
			Serv: sp.IssueService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.issueHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = newRouter(routerDeps{
			allowedOrigins: sp.HTTPCfg().AllowedOrigins(),
			logger:         sp.Logger(),
			sessions:       sp.Sessions(),
			gate:           sp.Gate(ctx),
			authHandler:    sp.AuthHandler(ctx),
			issueHandler:   sp.IssueHandler(ctx),
		})
	}

	return sp.router
}

func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
