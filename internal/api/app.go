package api

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/auth"
	"github.com/notch-0314/heattech-backend/internal/oura"
	"github.com/notch-0314/heattech-backend/internal/service"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
	Messages() storage.CopingMessageRepository
	Daily() storage.DailyMessageRepository
	Issuer() *auth.TokenIssuer
	Credentials() oura.Credentials
	HeartRate() service.HeartRateFetcher
	Contributors() service.ContributorFetcher
	Clock() clockwork.Clock
	Location() *time.Location
}

// Deps is the default App implementation assembled in cmd/server.
type Deps struct {
	Log         internal.Logger
	Repos       *storage.Repositories
	TokenIssuer *auth.TokenIssuer
	OuraKeys    oura.Credentials
	Oura        *oura.Client
	Clk         clockwork.Clock
	Loc         *time.Location
}

func (d *Deps) Logger() internal.Logger                     { return d.Log }
func (d *Deps) Users() storage.UserRepository               { return d.Repos.Users }
func (d *Deps) Messages() storage.CopingMessageRepository   { return d.Repos.Messages }
func (d *Deps) Daily() storage.DailyMessageRepository       { return d.Repos.Daily }
func (d *Deps) Issuer() *auth.TokenIssuer                   { return d.TokenIssuer }
func (d *Deps) Credentials() oura.Credentials               { return d.OuraKeys }
func (d *Deps) HeartRate() service.HeartRateFetcher         { return d.Oura }
func (d *Deps) Contributors() service.ContributorFetcher    { return d.Oura }
func (d *Deps) Clock() clockwork.Clock                      { return d.Clk }
func (d *Deps) Location() *time.Location                    { return d.Loc }
