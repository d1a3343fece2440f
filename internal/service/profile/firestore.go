package profile

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const profilesCollection = "profiles"

// firestoreProfile maps to the Firestore document structure. The username is
// the document ID.
type firestoreProfile struct {
	Email       string `firestore:"email"`
	Name        string `firestore:"name"`
	Mode        string `firestore:"mode"`
	Message     string `firestore:"message"`
	CanActivate bool   `firestore:"can_activate"`
}

func toFirestoreProfile(p Profile) firestoreProfile {
	return firestoreProfile{
		Email:       p.Email,
		Name:        p.Name,
		Mode:        p.Mode,
		Message:     p.Message,
		CanActivate: p.CanActivate,
	}
}

func (fp firestoreProfile) toProfile(username string) Profile {
	return Profile{
		Username:    username,
		Email:       fp.Email,
		Name:        fp.Name,
		Mode:        fp.Mode,
		Message:     fp.Message,
		CanActivate: fp.CanActivate,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Upsert merges the provided fields over the stored document inside a
// transaction so concurrent upserts on the same username cannot lose fields.
func (s *FirestoreStore) Upsert(ctx context.Context, username string, params UpsertParams) (*Profile, error) {
	key := NormalizeUsername(username)
	if key == "" {
		return nil, ErrUsernameRequired
	}
	docRef := s.client.Collection(profilesCollection).Doc(key)

	var result Profile
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var prev *Profile
		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			var fp firestoreProfile
			if err := doc.DataTo(&fp); err != nil {
				return err
			}
			existing := fp.toProfile(key)
			prev = &existing
		case status.Code(err) != codes.NotFound:
			return err
		}

		result = merge(prev, key, params)
		return tx.Set(docRef, toFirestoreProfile(result))
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *FirestoreStore) Get(ctx context.Context, username string) (*Profile, error) {
	key := NormalizeUsername(username)
	doc, err := s.client.Collection(profilesCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	result := fp.toProfile(key)
	return &result, nil
}

// ActivateByEmail flips can_activate on every profile stored for the email.
// Zero matches is a no-op, not an error.
func (s *FirestoreStore) ActivateByEmail(ctx context.Context, email string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, nil
	}

	iter := s.client.Collection(profilesCollection).Where("email", "==", email).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, err
		}
		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "can_activate", Value: true},
		}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
