package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"wisewallet/backend/config"
)

// FirebaseCredentials picks the service account source: inline JSON, then
// base64 JSON, then a file. ok is false when none is configured and the
// application default credentials should be used.
func FirebaseCredentials(cfg config.FirebaseConfig) (opt option.ClientOption, source string, ok bool, err error) {
	if cfg.ServiceAccountJSON != "" {
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)), "json", true, nil
	}
	if cfg.ServiceAccountBase64 != "" {
		credBytes, err := base64.StdEncoding.DecodeString(cfg.ServiceAccountBase64)
		if err != nil {
			return nil, "", false, fmt.Errorf("error decoding base64 Firebase credentials: %w", err)
		}
		return option.WithCredentialsJSON(credBytes), "base64", true, nil
	}
	if cfg.ServiceAccountFile != "" {
		return option.WithCredentialsFile(cfg.ServiceAccountFile), "file", true, nil
	}
	return nil, "", false, nil
}

// NewFirebaseApp initializes the Firebase Admin SDK.
func NewFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	opt, source, ok, err := FirebaseCredentials(cfg)
	if err != nil {
		return nil, err
	}
	if ok {
		log.Printf("Using %s Firebase credentials", source)
		opts = append(opts, opt)
	} else {
		log.Println("No specific Firebase credentials found, using application default credentials")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	return app, nil
}

// FirebaseIdentity delegates accounts to Firebase Authentication. The Admin SDK
// cannot check passwords, so sign-in goes through the Identity Toolkit API
// with the project's web API key.
type FirebaseIdentity struct {
	auth  *auth.Client
	relay *identitytoolkit.RelyingpartyService
}

func NewFirebaseIdentity(ctx context.Context, app *firebase.App, webAPIKey string) (*FirebaseIdentity, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(webAPIKey))
	if err != nil {
		return nil, fmt.Errorf("error creating identity toolkit client: %w", err)
	}
	return &FirebaseIdentity{auth: client, relay: toolkit.Relyingparty}, nil
}

func (p *FirebaseIdentity) CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return accountFromRecord(record), nil
}

func (p *FirebaseIdentity) VerifyPassword(ctx context.Context, email, password string) (*Account, error) {
	resp, err := p.relay.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classifyVerifyError(err)
	}
	return &Account{UID: resp.LocalId, Email: resp.Email, DisplayName: resp.DisplayName}, nil
}

func (p *FirebaseIdentity) GetAccount(ctx context.Context, uid string) (*Account, error) {
	record, err := p.auth.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return accountFromRecord(record), nil
}

func (p *FirebaseIdentity) DeleteAccount(ctx context.Context, uid string) error {
	err := p.auth.DeleteUser(ctx, uid)
	if auth.IsUserNotFound(err) {
		return ErrAccountNotFound
	}
	return err
}

func accountFromRecord(record *auth.UserRecord) *Account {
	if record == nil || record.UserInfo == nil {
		return &Account{}
	}
	return &Account{UID: record.UID, Email: record.Email, DisplayName: record.DisplayName}
}

// classifyVerifyError maps Identity Toolkit sign-in failures. Bad email,
// bad password, disabled user and lockout all come back as 400.
func classifyVerifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		msg := apiErr.Message
		switch {
		case strings.HasPrefix(msg, "EMAIL_NOT_FOUND"),
			strings.HasPrefix(msg, "INVALID_PASSWORD"),
			strings.HasPrefix(msg, "INVALID_LOGIN_CREDENTIALS"),
			strings.HasPrefix(msg, "INVALID_EMAIL"),
			strings.HasPrefix(msg, "USER_DISABLED"),
			strings.HasPrefix(msg, "TOO_MANY_ATTEMPTS_TRY_LATER"):
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
		}
	}
	return err
}
