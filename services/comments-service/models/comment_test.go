package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidate(t *testing.T) {
	tests := []struct {
		name    string
		comment Comment
		wantErr error
	}{
		{"valid", Comment{ItemID: "I1", UserID: "U1", Text: "nice"}, nil},
		{"missing item", Comment{UserID: "U1", Text: "nice"}, ErrMissingItemID},
		{"missing user", Comment{ItemID: "I1", Text: "nice"}, ErrMissingUserID},
		{"empty text", Comment{ItemID: "I1", UserID: "U1"}, ErrEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRatingValidate(t *testing.T) {
	tests := []struct {
		name    string
		rating  Rating
		wantErr error
	}{
		{"valid one star", Rating{ItemID: "I1", UserID: "U1", Stars: 1}, nil},
		{"valid five stars", Rating{ItemID: "I1", UserID: "U1", Stars: 5}, nil},
		{"zero stars", Rating{ItemID: "I1", UserID: "U1", Stars: 0}, ErrStarsOutOfRange},
		{"six stars", Rating{ItemID: "I1", UserID: "U1", Stars: 6}, ErrStarsOutOfRange},
		{"missing item", Rating{UserID: "U1", Stars: 3}, ErrMissingItemID},
		{"missing user", Rating{ItemID: "I1", Stars: 3}, ErrMissingUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rating.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
