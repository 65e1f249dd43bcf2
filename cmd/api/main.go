package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bodecoin/bodecoin-services/api/internal/config"
	"github.com/bodecoin/bodecoin-services/api/internal/server"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.Logger.WithError(err).Fatal("No se pudo conectar a MongoDB")
	}

	app, err := server.New(ctx, cfg, client)
	if err != nil {
		cfg.Logger.WithError(err).Fatal("No se pudo inicializar el servidor")
	}
	if err := app.Run(); err != nil {
		cfg.Logger.WithError(err).Fatal("Error al iniciar el servidor")
	}
}
