package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/RenierDuminy/CTFDA-scoring/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestPutAndGet() {
	err := s.storage.Put(s.ctx, "key-1", []byte(`{"a":1}`))
	s.Require().NoError(err)

	value, err := s.storage.Get(s.ctx, "key-1")
	s.Require().NoError(err)
	s.Equal([]byte(`{"a":1}`), value)
}

func (s *StorageSuite) TestGetMissingKey() {
	_, err := s.storage.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestDelete() {
	_ = s.storage.Put(s.ctx, "key-1", []byte("value"))

	err := s.storage.Delete(s.ctx, "key-1")
	s.Require().NoError(err)

	_, err = s.storage.Get(s.ctx, "key-1")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestDeleteMissingKeyIsNotAnError() {
	s.NoError(s.storage.Delete(s.ctx, "nonexistent"))
}

func (s *StorageSuite) TestGetReturnsCopy() {
	_ = s.storage.Put(s.ctx, "key-1", []byte("value"))

	value, err := s.storage.Get(s.ctx, "key-1")
	s.Require().NoError(err)
	value[0] = 'X'

	again, err := s.storage.Get(s.ctx, "key-1")
	s.Require().NoError(err)
	s.Equal([]byte("value"), again)
}

func (s *StorageSuite) TestKeys() {
	_ = s.storage.Put(s.ctx, "key-1", []byte("a"))
	_ = s.storage.Put(s.ctx, "key-2", []byte("b"))

	keys, err := s.storage.Keys(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"key-1", "key-2"}, keys)
}

func (s *StorageSuite) TestUsage() {
	_ = s.storage.Put(s.ctx, "ab", []byte("1234"))

	usage, err := s.storage.Usage(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(6), usage.TotalBytes)
	s.Equal(1, usage.ItemCount)
}

func (s *StorageSuite) TestClear() {
	_ = s.storage.Put(s.ctx, "key-1", []byte("a"))
	_ = s.storage.Put(s.ctx, "key-2", []byte("b"))

	s.Require().NoError(s.storage.Clear(s.ctx))

	usage, err := s.storage.Usage(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, usage.ItemCount)
}

func (s *StorageSuite) TestQuotaRejectsOversizedWrite() {
	s.storage = NewWithQuota(10)

	err := s.storage.Put(s.ctx, "key", []byte("0123456789"))
	s.ErrorIs(err, model.ErrStoreFull)
}

func (s *StorageSuite) TestQuotaCountsOverwriteAgainstOldSize() {
	s.storage = NewWithQuota(10)

	s.Require().NoError(s.storage.Put(s.ctx, "key", []byte("1234567")))

	// Overwriting releases the old value's bytes first.
	s.NoError(s.storage.Put(s.ctx, "key", []byte("abcdefg")))

	err := s.storage.Put(s.ctx, "key", []byte("too-long-value"))
	s.ErrorIs(err, model.ErrStoreFull)
}

func (s *StorageSuite) TestQuotaFreedByDelete() {
	s.storage = NewWithQuota(12)

	s.Require().NoError(s.storage.Put(s.ctx, "a", []byte("0123456789")))
	s.Require().ErrorIs(s.storage.Put(s.ctx, "b", []byte("0123456789")), model.ErrStoreFull)

	s.Require().NoError(s.storage.Delete(s.ctx, "a"))
	s.NoError(s.storage.Put(s.ctx, "b", []byte("0123456789")))
}
