package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository persists users keyed by id. Partial updates use $set
// and ledger/record prepends use positional $push, so no caller ever
// rewrites the whole collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Insert(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByIdentity matches email or display name, case-insensitively.
func (r *UserRepository) FindByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	exact := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(identity) + "$", Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"email": exact},
		bson.M{"name": exact},
	}}

	var u domain.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []*domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// Update applies a shallow merge of the non-nil fields and returns the
// updated document.
func (r *UserRepository) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}
	if upd.WalletBalance != nil {
		set["wallet_balance"] = *upd.WalletBalance
	}
	if upd.BonusBalance != nil {
		set["bonus_balance"] = *upd.BonusBalance
	}
	if upd.IsSubscribed != nil {
		set["is_subscribed"] = *upd.IsSubscribed
	}
	if upd.IsFrozen != nil {
		set["is_frozen"] = *upd.IsFrozen
	}
	if upd.IsOnline != nil {
		set["is_online"] = *upd.IsOnline
	}
	if upd.ConsultationFee != nil {
		set["consultation_fee"] = *upd.ConsultationFee
	}
	if upd.Specialization != nil {
		set["specialization"] = *upd.Specialization
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.BankAccount != nil {
		set["bank_account"] = *upd.BankAccount
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	after := options.After
	var u domain.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// PrependTransaction inserts tx at index 0 of the user's ledger.
func (r *UserRepository) PrependTransaction(ctx context.Context, userID string, tx domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"transactions": bson.M{
			"$each":     bson.A{tx},
			"$position": 0,
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// PrependDiagnosis inserts d at index 0 of the patient's record.
func (r *UserRepository) PrependDiagnosis(ctx context.Context, patientID string, d domain.Diagnosis) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": patientID, "medical_record": bson.M{"$ne": nil}},
		bson.M{"$push": bson.M{"medical_record.diagnoses": bson.M{
			"$each":     bson.A{d},
			"$position": 0,
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, patientID); err != nil {
			return err
		}
		return domain.ErrNoMedicalRecord
	}
	return nil
}

// ReplaceAll overwrites the whole collection (snapshot import).
func (r *UserRepository) ReplaceAll(ctx context.Context, users []domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := r.col.Drop(ctx); err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}

	docs := make([]any, 0, len(users))
	for _, u := range users {
		docs = append(docs, u)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.Drop(ctx)
}

// EnsureIndexes creates the lookup indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
