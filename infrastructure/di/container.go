// Package di wires the application's dependencies. The store client is
// constructed once here and injected into the repositories; nothing
// holds a hidden global handle.
package di

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/infrastructure/config"
	"wishlist-backend/infrastructure/persistence/dynamodb"
	"wishlist-backend/infrastructure/persistence/repository"
	"wishlist-backend/pkg/auth"
)

// Container holds the application's wired dependencies.
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Store         ports.KVStore
	Lists         ports.ListRepository
	Items         ports.ItemRepository
	AuthValidator *auth.Validator
}

// InitializeContainer builds the full dependency graph.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := provideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awsdynamodb.NewFromConfig(awsCfg)
	store := dynamodb.NewStore(client, cfg.DynamoDBTable, cfg.IndexName, logger)

	lists := repository.NewListRepository(store, logger)
	items := repository.NewItemRepository(store, lists, logger)

	validator, err := provideAuthValidator(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth validator: %w", err)
	}

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Store:         store,
		Lists:         lists,
		Items:         items,
		AuthValidator: validator,
	}, nil
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func provideAuthValidator(cfg *config.Config) (*auth.Validator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}

	return auth.NewValidator(auth.Config{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
	})
}
