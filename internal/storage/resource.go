package storage

import "errors"

type Resource string

const (
	Offers   Resource = "offers"
	Products Resource = "products"
	Users    Resource = "users"
	Chat     Resource = "chat"
)

var (
	ErrNotExist        = errors.New("document does not exist")
	ErrUnknownResource = errors.New("unknown resource")
	ErrCorrupt         = errors.New("document is not valid JSON")
)

var emptyDocuments = map[Resource]string{
	Offers:   `[]`,
	Products: `[]`,
	Users:    `[]`,
	Chat:     `{"conversations":[],"messages":[]}`,
}

// AllResources is the fixed set of documents, in snapshot order.
func AllResources() []Resource {
	return []Resource{Offers, Products, Users, Chat}
}

// EmptyDocument is what a resource reads as before anything was written.
func EmptyDocument(res Resource) []byte {
	return []byte(emptyDocuments[res])
}
