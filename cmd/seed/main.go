package main

import (
	"context"
	"flag"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bodecoin/bodecoin-services/api/internal/config"
	mongodoc "github.com/bodecoin/bodecoin-services/api/internal/infrastructure/mongo"
	"github.com/bodecoin/bodecoin-services/api/internal/seed"
)

func main() {
	drop := flag.Bool("drop", false, "drop the business collection before seeding")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.Logger

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.WithError(err).Fatal("No se pudo conectar a MongoDB")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	database := client.Database(cfg.MongoDatabase)
	collection := database.Collection(cfg.BusinessCollection)

	if *drop {
		if err := collection.Drop(ctx); err != nil {
			logger.WithError(err).Fatal("No se pudo vaciar la colección de negocios")
		}
		logger.WithField("collection", cfg.BusinessCollection).Info("Colección vaciada")
	}

	count, err := collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		logger.WithError(err).Fatal("No se pudo contar los negocios existentes")
	}
	if count > 0 {
		logger.WithField("count", count).Info("La colección ya tiene negocios, no se insertan datos de muestra")
		return
	}

	// Unique index so duplicate sign-ups surface as a Mongo duplicate key.
	users := database.Collection(cfg.UserCollection)
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := users.Indexes().CreateOne(ctx, emailIndex); err != nil {
		logger.WithError(err).Fatal("No se pudo crear el índice único de email")
	}

	repo := mongodoc.NewBusinessRepository(database, cfg.BusinessCollection)
	inserted := 0
	for _, business := range seed.SampleBusinesses() {
		business.ID = ""
		if _, err := repo.Insert(ctx, &business); err != nil {
			logger.WithError(err).WithField("name", business.Name).Fatal("No se pudo insertar el negocio de muestra")
		}
		inserted++
	}

	logger.WithField("inserted", inserted).Info("Datos de muestra cargados")
}
