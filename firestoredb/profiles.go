package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"wisewallet/backend/models"
)

type profileDoc struct {
	Name           string    `firestore:"name"`
	Email          string    `firestore:"email"`
	University     string    `firestore:"university"`
	Major          string    `firestore:"major"`
	GraduationYear string    `firestore:"graduationYear"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

// ProfileRepository stores profiles as users/{uid} documents.
type ProfileRepository struct {
	client *firestore.Client
}

func NewProfileRepository(client *firestore.Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.client.Collection(usersCollection).Doc(u.ID).Create(ctx, profileDoc{
		Name:           u.Name,
		Email:          u.Email,
		University:     u.University,
		Major:          u.Major,
		GraduationYear: u.GraduationYear,
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	})
	return translate(err, "create profile")
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, translate(err, "get profile")
	}
	var d profileDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, translate(err, "decode profile")
	}
	return &models.User{
		ID: uid,
		Profile: models.Profile{
			Name:           d.Name,
			Email:          d.Email,
			University:     d.University,
			Major:          d.Major,
			GraduationYear: d.GraduationYear,
		},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}
