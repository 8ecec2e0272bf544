package mongo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

const userCollection = "users"

// UserRepository stores the reference gateway's users. Emails are stored
// lowercased so the unique index enforces case-insensitive uniqueness.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name"`
	Role         string `bson:"role"`
	AvatarURL    string `bson:"avatar_url,omitempty"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	email := strings.ToLower(user.Email)

	// The unique index is the backstop; this check gives a clean error on
	// the common path.
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Err(); err == nil {
		return nil, domain.ErrUserExists
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("check email: %w", err)
	}

	doc := mongoUser{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		AvatarURL:    user.AvatarURL,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	user := mu.toDomain()
	return &user, mu.PasswordHash, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	return users, cur.Err()
}

func (mu mongoUser) toDomain() domain.User {
	return domain.User{
		ID:        mu.ID,
		Email:     mu.Email,
		FirstName: mu.FirstName,
		LastName:  mu.LastName,
		Role:      mu.Role,
		AvatarURL: mu.AvatarURL,
	}
}
