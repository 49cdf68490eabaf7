package main

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/cli/meals"
	"github.com/aleksanderbl29/meal-planner/internal/cli/system"
	"github.com/aleksanderbl29/meal-planner/internal/config"
	"github.com/aleksanderbl29/meal-planner/internal/constants"
	apperrors "github.com/aleksanderbl29/meal-planner/internal/errors"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
)

var CLI struct {
	config.Config `embed:""`

	Version kong.VersionFlag
	Debug   bool   `help:"Log debug output to stderr."`
	Session string `help:"Session token from 'mealplanner token'." env:"MEALPLANNER_TOKEN" name:"token"`

	Init     system.InitCmd   `cmd:"" help:"Initialize meal storage."`
	Doctor   system.DoctorCmd `cmd:"" help:"Run diagnostics on the configured stores."`
	Tui      system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve    system.ServeCmd  `cmd:"" help:"Serve the HTTP API."`
	TokenCmd system.TokenCmd  `cmd:"" name:"token" help:"Issue a session token for a user."`

	Add      meals.MealAddCmd     `cmd:"" help:"Plan a meal for a week."`
	Edit     meals.MealEditCmd    `cmd:"" help:"Edit a planned meal."`
	Delete   meals.MealDeleteCmd  `cmd:"" help:"Delete a meal."`
	Eaten    meals.MealEatenCmd   `cmd:"" help:"Mark a meal as eaten this week."`
	Promote  meals.MealPromoteCmd `cmd:"" help:"Move a meal to this week."`
	List     meals.MealListCmd    `cmd:"" help:"List upcoming meals or the meal history."`
	Calendar meals.CalendarCmd    `cmd:"" help:"Show meals for the weeks around the current one."`
	Week     meals.WeekCmd        `cmd:"" help:"Show the meals planned for one week."`

	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the meal collection."`
		List    system.BackupListCmd    `cmd:"" help:"List meal snapshots."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Replace the meal collection with a snapshot."`
	} `cmd:"" help:"Back up and restore meals."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show OS keyring status."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Plan meals by ISO week and keep track of what has been eaten."),
		kong.UsageOnError(),
		kong.Vars{
			"version":        constants.Version,
			"default_db":     config.DefaultDB(),
			"weeks_before":   strconv.Itoa(constants.DefaultWeeksBefore),
			"weeks_after":    strconv.Itoa(constants.DefaultWeeksAfter),
			"listen_addr":    constants.DefaultListenAddr,
			"token_duration": constants.DefaultTokenDuration,
		},
	)

	command := "tui"
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		command = fields[0]
	}

	if err := config.LoadDotEnv(); err != nil {
		apperrors.Fatal(err)
	}

	cfg := CLI.Config
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: cfg.ConfigDir(),
		Stderr:    command == "serve",
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	cfg.ResolveSecrets()

	store, err := cfg.Store()
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx, err := cli.NewContext(cfg, store)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := appCtx.Authenticate(CLI.Session); err != nil {
		apperrors.Fatal(err)
	}

	switch command {
	case "init", "keyring", "token":
		// These manage storage or secrets themselves.
	case "doctor":
		if err := store.Load(); err != nil {
			logger.Warn("Store failed to load, continuing with diagnostics", "error", err)
		}
	default:
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer logger.Close()
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
