package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"vergate/internal/backends"
	"vergate/internal/gate"
	"vergate/internal/ports"
	"vergate/internal/pub"
	"vergate/internal/types"
)

func main() {
	// Load environment variables
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Info("The .env file not found.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("GATE_CONFIG")
	if cfgPath == "" {
		cfgPath = "vergate.yaml"
	}
	cfg, err := types.LoadGateConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load gate config: %v", err)
	}
	// The installation directory can come from the host environment instead
	// of the config file.
	if cfg.CatalogDir == "" {
		cfg.CatalogDir = os.Getenv("CATALOG_DIR")
	}

	opener, err := backends.CatalogOpenerFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize catalog backend: %v", err)
	}

	var notifier ports.Notifier
	if cfg.NotifyTopicARN != "" {
		notifier, err = snsNotifierFromEnv(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize SNS notifier: %v", err)
		}
	}

	env := ports.EnvironmentFunc(func() string {
		return os.Getenv("RUNTIME_VERSION")
	})

	g := gate.New(cfg, env, opener,
		newTerminalPrompter(cfg),
		&execReviewer{command: cfg.ReviewerCommand},
		notifier,
		log.WithField("channel", cfg.ChannelName),
	)
	res := g.Run(ctx)
	log.WithFields(log.Fields{
		"state":   res.State.String(),
		"current": res.Current,
	}).Info("gate pass finished")

	if res.State != gate.StateCompliant {
		os.Exit(1)
	}
}

// snsNotifierFromEnv builds the SNS client, honoring a local endpoint
// override for testing.
func snsNotifierFromEnv(ctx context.Context) (ports.Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	snsEndpoint := os.Getenv("SNS_ENDPOINT")
	cli := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if snsEndpoint != "" {
			o.BaseEndpoint = &snsEndpoint
			if o.Region == "" {
				o.Region = "us-east-1"
			}
			o.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
		}
	})
	return pub.NewSNS(cli), nil
}
