package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

const participantCollection = "participants"

// ParticipantStore is the row store backed by MongoDB instead of the live
// spreadsheet. Lookups go through a unique index on the normalised payment
// identifier rather than a linear scan.
type ParticipantStore struct {
	coll *mongo.Collection
}

func NewParticipantStore(db *mongo.Database) *ParticipantStore {
	return &ParticipantStore{coll: db.Collection(participantCollection)}
}

type participantDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	PaymentID     string             `bson:"payment_id"`
	NormalizedID  string             `bson:"normalized_id"`
	Name          string             `bson:"name,omitempty"`
	College       string             `bson:"college,omitempty"`
	Gender        string             `bson:"gender,omitempty"`
	Contact       string             `bson:"contact,omitempty"`
	Accommodation string             `bson:"accommodation,omitempty"`
	PassType      string             `bson:"pass_type,omitempty"`
	CheckInStatus string             `bson:"check_in_status,omitempty"`
	CheckedInBy   string             `bson:"checked_in_by,omitempty"`
	Timestamp     string             `bson:"timestamp,omitempty"`
}

// EnsureIndexes creates the unique index on the normalised identifier. Call
// once at startup.
func (s *ParticipantStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "normalized_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create participant index: %w", err)
	}
	return nil
}

func (s *ParticipantStore) LoadAll(ctx context.Context) ([]domain.Participant, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: load participants: %v", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	var participants []domain.Participant
	for cur.Next(ctx) {
		var doc participantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode participant: %v", domain.ErrStoreUnavailable, err)
		}
		participants = append(participants, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate participants: %v", domain.ErrStoreUnavailable, err)
	}
	return participants, nil
}

func (s *ParticipantStore) FindByID(ctx context.Context, id string) (*domain.Participant, error) {
	var doc participantDoc
	err := s.coll.FindOne(ctx, bson.M{"normalized_id": domain.NormalizeID(id)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find participant: %v", domain.ErrStoreUnavailable, err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (s *ParticipantStore) Save(ctx context.Context, p *domain.Participant) error {
	oid, err := primitive.ObjectIDFromHex(p.StoreRef)
	if err != nil {
		return fmt.Errorf("save: participant %q has no document reference", p.ID)
	}

	update := bson.M{"$set": bson.M{
		"check_in_status": string(p.CheckInStatus),
		"checked_in_by":   p.CheckedInBy,
		"timestamp":       p.Timestamp,
	}}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("%w: save participant: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Ping verifies the database is reachable, for the readiness probe.
func (s *ParticipantStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (d participantDoc) toDomain() domain.Participant {
	status := domain.CheckInStatus(d.CheckInStatus)
	if status == "" {
		status = domain.StatusNotPrinted
	}
	return domain.Participant{
		ID:            d.PaymentID,
		Name:          d.Name,
		College:       d.College,
		Gender:        d.Gender,
		Contact:       d.Contact,
		Accommodation: d.Accommodation,
		PassType:      d.PassType,
		CheckInStatus: status,
		CheckedInBy:   d.CheckedInBy,
		Timestamp:     d.Timestamp,
		StoreRef:      d.ID.Hex(),
	}
}
