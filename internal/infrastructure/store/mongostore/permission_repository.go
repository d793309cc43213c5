package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/annuaire/directory-system/internal/core/domain"
)

type PermissionRepository struct {
	coll *mongo.Collection
}

func NewPermissionRepository(db *mongo.Database) *PermissionRepository {
	return &PermissionRepository{coll: db.Collection(permissionsCollection)}
}

type mongoPermission struct {
	Owner   string `bson:"owner"`
	Grantee string `bson:"grantee"`
}

func (r *PermissionRepository) Grant(ctx context.Context, owner, grantee string) error {
	filter := bson.M{"owner": owner, "grantee": grantee}
	doc := mongoPermission{Owner: owner, Grantee: grantee}
	_, err := r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}

func (r *PermissionRepository) Revoke(ctx context.Context, owner, grantee string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"owner": owner, "grantee": grantee}); err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}

func (r *PermissionRepository) Exists(ctx context.Context, owner, grantee string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"owner": owner, "grantee": grantee})
	if err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return n > 0, nil
}

func (r *PermissionRepository) OwnersFor(ctx context.Context, grantee string) ([]string, error) {
	return r.names(ctx, bson.M{"grantee": grantee}, func(p mongoPermission) string { return p.Owner })
}

func (r *PermissionRepository) GranteesFor(ctx context.Context, owner string) ([]string, error) {
	return r.names(ctx, bson.M{"owner": owner}, func(p mongoPermission) string { return p.Grantee })
}

func (r *PermissionRepository) RemoveAccount(ctx context.Context, name string) error {
	filter := bson.M{"$or": bson.A{bson.M{"owner": name}, bson.M{"grantee": name}}}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("remove account permissions: %w", err)
	}
	return nil
}

func (r *PermissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPermission
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	perms := make([]domain.Permission, 0, len(docs))
	for _, doc := range docs {
		perms = append(perms, domain.Permission{Owner: doc.Owner, Grantee: doc.Grantee})
	}
	return perms, nil
}

func (r *PermissionRepository) names(ctx context.Context, filter bson.M, pick func(mongoPermission) string) ([]string, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPermission
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, pick(doc))
	}
	return out, nil
}
