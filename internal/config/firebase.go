package config

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// Firebase bundles the Admin SDK clients the service talks to
type Firebase struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
}

// InitFirebase initializes the Firebase Admin SDK for the configured project
func InitFirebase(ctx context.Context, cfg Config) (*Firebase, error) {
	credentialsPath := cfg.FirebaseCredentialsPath

	// Check if credentials file exists
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		log.Printf("⚠️  Firebase credentials not found at %s", credentialsPath)
		log.Println("📝 Please download your Firebase service account key and place it at the specified path")
		return nil, err
	}

	var appCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		log.Printf("Error initializing Firebase app: %v", err)
		return nil, err
	}
	log.Println("✅ Firebase app initialized")

	fs, err := app.Firestore(ctx)
	if err != nil {
		log.Printf("Error initializing Firestore: %v", err)
		return nil, err
	}
	log.Println("✅ Firestore client initialized")

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		log.Printf("Error initializing Auth: %v", err)
		return nil, err
	}
	log.Println("✅ Firebase Auth client initialized")

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		// Push is optional; the rest of the service works without it.
		log.Printf("⚠️  Firebase Messaging unavailable: %v", err)
	}

	return &Firebase{
		App:       app,
		Firestore: fs,
		Auth:      authClient,
		Messaging: msgClient,
	}, nil
}

// Close closes Firebase connections
func (f *Firebase) Close() {
	if f != nil && f.Firestore != nil {
		f.Firestore.Close()
		log.Println("🔌 Firestore connection closed")
	}
}
