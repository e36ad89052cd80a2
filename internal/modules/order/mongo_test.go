package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsWriteConflict(t *testing.T) {
	assert.True(t, isWriteConflict(mongo.CommandError{Code: 112, Name: "WriteConflict"}))
	assert.True(t, isWriteConflict(mongo.CommandError{Code: 251, Labels: []string{"TransientTransactionError"}}))
	assert.True(t, isWriteConflict(mongo.WriteException{Labels: []string{"TransientTransactionError"}}))

	assert.False(t, isWriteConflict(mongo.CommandError{Code: 11000, Name: "DuplicateKey"}))
	assert.False(t, isWriteConflict(errors.New("connection reset")))
	assert.False(t, isWriteConflict(nil))
}
