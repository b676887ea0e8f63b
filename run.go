package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
)

func init() {
	parser.AddCommand("run",
		"Run slack-proofbot",
		"Run slack-proofbot.",
		&RunCommand{},
	)
}

// RunCommand struct
type RunCommand struct{}

// Execute command
func (x *RunCommand) Execute(args []string) error {
	config = LoadConfig(options.Config)

	var err error
	credentials, err = LoadCredentials()
	if err != nil {
		return err
	}

	logger = newLogger()

	go start()

	c := make(chan os.Signal, 1)
	signal.Notify(c)
	for sig := range c {
		switch sig {
		case os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM:
			return nil
		default:
		}
	}

	return nil
}

func start() {
	routing := setup()
	routing.Run(config.HTTPServer.Listen)
}

func setup() *gin.Engine {
	loadTranslateFile()
	setLocale(config.Locale)
	setValidation()

	dispatcher = NewDispatcher(
		credentials,
		NewProofreadClient(config.Proofreading.URL, credentials.ProofreadAPIKey),
		NewSlackClient(credentials.BotAccessToken),
	)

	if config.Debug == false {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	if config.Debug {
		r.Use(gin.Logger())
	}

	errorHandlers := []ErrorHandlerFunc{
		PanicLogger(),
		ErrorLogger(),
		ErrorResponseHandler(),
	}
	sentry, _ := raven.New(config.SentryDSN)

	if sentry != nil {
		errorHandlers = append(errorHandlers, ErrorCaptureHandler(sentry, true))
	}

	r.Use(ErrorHandler(errorHandlers...))

	r.POST("/slack/events", slackEventHandler)

	return r
}
