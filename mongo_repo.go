package signup

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const AccountsCollection = "accounts"

type mongoAccountRepository struct {
	collection *mongo.Collection
}

type dbAccount struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

// NewMongoAccountRepository stores accounts in c. The caller owns the client
// behind c and is responsible for disconnecting it.
func NewMongoAccountRepository(c *mongo.Collection) Repository {
	return &mongoAccountRepository{collection: c}
}

func (m *mongoAccountRepository) Add(ctx context.Context, req AddAccountRequest) (Account, error) {
	dba := dbAccountFromRequest(req)
	res, err := m.collection.InsertOne(ctx, &dba)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return accountFromDBAccount(dba, insertedID(res.InsertedID)), nil
}

func insertedID(v interface{}) ID {
	if oid, ok := v.(primitive.ObjectID); ok {
		return ID(oid.Hex())
	}
	return ID(fmt.Sprint(v))
}

func dbAccountFromRequest(req AddAccountRequest) dbAccount {
	return dbAccount{Name: req.Name, Email: req.Email, Password: req.Password}
}

func accountFromDBAccount(a dbAccount, id ID) Account {
	return Account{ID: id, Name: a.Name, Email: a.Email, Password: a.Password}
}
