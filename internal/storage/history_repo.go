package storage

import (
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// HistoryRepo persists the support chat transcript.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new chat history repository.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append stores one message. Keys embed a nanosecond timestamp, so badger's
// key order is transcript order.
func (r *HistoryRepo) Append(msg *model.Message) error {
	if msg.Key == "" {
		msg.Key = model.GenerateMessageKey(msg.Timestamp)
	}
	return r.db.Set(msg)
}

// List retrieves the full transcript in send order.
func (r *HistoryRepo) List() ([]*model.Message, error) {
	return GetAllByPrefix(r.db, model.PrefixMessage+":", func() *model.Message {
		return &model.Message{}
	})
}

// Tail retrieves up to n most recent messages in send order.
func (r *HistoryRepo) Tail(n int) ([]*model.Message, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

// Clear removes the whole transcript.
func (r *HistoryRepo) Clear() (int, error) {
	return r.db.DeleteByPrefix(model.PrefixMessage + ":")
}
