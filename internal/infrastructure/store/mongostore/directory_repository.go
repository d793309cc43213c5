package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/annuaire/directory-system/internal/core/domain"
)

// DirectoryRepository stores one document per owner, mirroring the
// table-per-account layout of the flat-file backend. Mutations load the
// owner's document, change it in memory, and replace it wholesale.
type DirectoryRepository struct {
	coll *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{coll: db.Collection(directoriesCollection)}
}

type mongoContact struct {
	Surname   string `bson:"surname"`
	FirstName string `bson:"first_name"`
	Phone     string `bson:"phone"`
	Address   string `bson:"address"`
	Email     string `bson:"email"`
}

type mongoDirectory struct {
	Owner    string         `bson:"_id"`
	Contacts []mongoContact `bson:"contacts"`
}

func (r *DirectoryRepository) Create(ctx context.Context, owner string) error {
	doc := mongoDirectory{Owner: owner, Contacts: []mongoContact{}}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": owner}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) Delete(ctx context.Context, owner string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": owner}); err != nil {
		return fmt.Errorf("delete directory: %w", err)
	}
	return nil
}

func (r *DirectoryRepository) List(ctx context.Context, owner string) ([]domain.Contact, error) {
	doc, err := r.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	contacts := make([]domain.Contact, 0, len(doc.Contacts))
	for _, c := range doc.Contacts {
		contacts = append(contacts, domain.Contact(c))
	}
	return contacts, nil
}

func (r *DirectoryRepository) Add(ctx context.Context, owner string, contact domain.Contact) error {
	doc, err := r.load(ctx, owner)
	if err != nil {
		return err
	}
	for _, c := range doc.Contacts {
		if c.Surname == contact.Surname && c.FirstName == contact.FirstName {
			return domain.ErrContactExists
		}
	}
	doc.Contacts = append(doc.Contacts, mongoContact(contact))
	return r.replace(ctx, doc)
}

func (r *DirectoryRepository) Update(ctx context.Context, owner string, contact domain.Contact) error {
	doc, err := r.load(ctx, owner)
	if err != nil {
		return err
	}
	updated := false
	for i := range doc.Contacts {
		if doc.Contacts[i].Surname == contact.Surname && doc.Contacts[i].FirstName == contact.FirstName {
			doc.Contacts[i] = mongoContact(contact)
			updated = true
		}
	}
	if !updated {
		return domain.ErrContactNotFound
	}
	return r.replace(ctx, doc)
}

func (r *DirectoryRepository) Remove(ctx context.Context, owner string, key domain.ContactKey) error {
	doc, err := r.load(ctx, owner)
	if err != nil {
		return err
	}
	remaining := doc.Contacts[:0]
	found := false
	for _, c := range doc.Contacts {
		if c.Surname == key.Surname && c.FirstName == key.FirstName {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return domain.ErrContactNotFound
	}
	doc.Contacts = remaining
	return r.replace(ctx, doc)
}

func (r *DirectoryRepository) Count(ctx context.Context, owner string) (int, error) {
	doc, err := r.load(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return len(doc.Contacts), nil
}

func (r *DirectoryRepository) load(ctx context.Context, owner string) (*mongoDirectory, error) {
	var doc mongoDirectory
	if err := r.coll.FindOne(ctx, bson.M{"_id": owner}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDirectoryNotFound
		}
		return nil, fmt.Errorf("load directory: %w", err)
	}
	return &doc, nil
}

func (r *DirectoryRepository) replace(ctx context.Context, doc *mongoDirectory) error {
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.Owner}, doc); err != nil {
		return fmt.Errorf("store directory: %w", err)
	}
	return nil
}
