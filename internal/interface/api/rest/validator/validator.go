package validator

import (
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidatePage parses the page query parameter; pages start at 1.
func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return 0, errors.New("invalid page")
	}

	return p, nil
}

func IsObjectID(s string) (bool, primitive.ObjectID) {
	id, err := primitive.ObjectIDFromHex(s)
	return err == nil, id
}
