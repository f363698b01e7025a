// Command onboard walks a member draft through the onboarding wizard and
// submits it to the provisioning function.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appOnboarding "github.com/society/backend/internal/application/onboarding"
	"github.com/society/backend/internal/domain/onboarding"
	"github.com/society/backend/internal/infrastructure/config"
	"github.com/society/backend/internal/infrastructure/logger"
	"github.com/society/backend/internal/infrastructure/provisioningclient"
)

func main() {
	var (
		draftPath   string
		societyID   string
		functionURL string
		apiKey      string
		token       string
		userID      string
		template    bool
		logLevel    string
		timeout     time.Duration
	)
	flag.StringVar(&draftPath, "draft", "", "Path to the member draft JSON file")
	flag.StringVar(&societyID, "society", "", "Society to add the member to (defaults to the draft's, then the session's)")
	flag.StringVar(&functionURL, "url", "", "Provisioning function URL (default: provisioning.function_url)")
	flag.StringVar(&apiKey, "apikey", "", "Platform anon key sent as the apikey header")
	flag.StringVar(&token, "token", "", "Caller session token")
	flag.StringVar(&userID, "user", "", "Caller user id for the session")
	flag.BoolVar(&template, "template", false, "Print an empty draft and exit")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Submission timeout")
	flag.Parse()

	if template {
		if err := appOnboarding.WriteDraft(os.Stdout, onboarding.NewMemberDraft()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if draftPath == "" {
		fmt.Fprintln(os.Stderr, "usage: onboard -draft member.json [-society id] [-url function-url]")
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	_ = godotenv.Load()
	if functionURL == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Failed to load configuration", zap.Error(err))
		}
		functionURL = cfg.Provisioning.FunctionURL
	}

	draft, err := appOnboarding.LoadDraftFile(draftPath)
	if err != nil {
		log.Fatal("Failed to load draft", zap.String("path", draftPath), zap.Error(err))
	}

	client, err := provisioningclient.New(provisioningclient.Config{
		URL:         functionURL,
		APIKey:      apiKey,
		AccessToken: token,
		Timeout:     timeout,
	})
	if err != nil {
		log.Fatal("Failed to create provisioning client", zap.Error(err))
	}

	var result *onboarding.ProvisioningResult
	wizard := appOnboarding.NewWizard(societyID, client,
		appOnboarding.WithDraft(draft),
		appOnboarding.WithSession(onboarding.Session{CurrentUserID: userID, CurrentSocietyID: societyID}),
		appOnboarding.WithLogger(log),
		appOnboarding.WithNotifier(appOnboarding.NotifierFunc(printToast)),
		appOnboarding.WithOnComplete(func(r *onboarding.ProvisioningResult) { result = r }),
	)

	for wizard.Step() < onboarding.StepReview {
		step := wizard.Step()
		res := wizard.Next()
		if !res.OK() {
			fmt.Fprintf(os.Stderr, "%s step is incomplete:\n", step)
			printErrors(res.Errors)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "✓ %s\n", step)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if _, err := wizard.Submit(ctx); err != nil {
		var errs onboarding.ValidationErrors
		if errors.As(err, &errs) {
			printErrors(errs)
		}
		os.Exit(1)
	}

	fmt.Printf("operation: %s\nuser id:   %s\n", result.Operation, result.UserID)
	if result.TemporaryPassword != nil {
		fmt.Printf("temporary password: %s\n", *result.TemporaryPassword)
	}
}

func printToast(t appOnboarding.Toast) {
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", t.Severity, t.Title, t.Description)
}

func printErrors(errs onboarding.ValidationErrors) {
	for _, fe := range errs {
		fmt.Fprintf(os.Stderr, "  - %s: %s\n", fe.Path, fe.Message)
	}
}
