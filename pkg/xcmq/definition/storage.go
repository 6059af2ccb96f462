package definition

import (
	"sync"

	"github.com/chainbridge-labs/xcmq/pkg/xcmq/types"
)

type inboundPageKey struct {
	peer   types.PeerId
	sentAt types.SentAt
}

type outboundPageKey struct {
	peer types.PeerId
	idx  types.PageIndex
}

// DefaultStorage is the in-memory types.Store used when a host does
// not wire in its own transactional key-value store. It guards every
// map with a single mutex and hands callers a defensive copy on every
// read, so that the only way to observe a mutation is through an
// explicit Put/Delete call, matching the coarse read-modify-write
// resource model the engine assumes of its storage layer.
type DefaultStorage struct {
	mu sync.Mutex

	inboundStatus  types.InboundStatusList
	inboundPages   map[inboundPageKey][]byte
	outboundStatus types.OutboundStatusList
	outboundPages  map[outboundPageKey][]byte
	signalPages    map[types.PeerId][]byte
}

// NewDefaultStorage creates an empty in-memory store.
func NewDefaultStorage() *DefaultStorage {
	return &DefaultStorage{
		inboundPages:  make(map[inboundPageKey][]byte),
		outboundPages: make(map[outboundPageKey][]byte),
		signalPages:   make(map[types.PeerId][]byte),
	}
}

func (s *DefaultStorage) GetInboundStatusList() (types.InboundStatusList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inboundStatus.Clone(), nil
}

func (s *DefaultStorage) PutInboundStatusList(list types.InboundStatusList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inboundStatus = list.Clone()
	return nil
}

func (s *DefaultStorage) GetInboundPage(peer types.PeerId, sentAt types.SentAt) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.inboundPages[inboundPageKey{peer, sentAt}]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *DefaultStorage) PutInboundPage(peer types.PeerId, sentAt types.SentAt, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inboundPages[inboundPageKey{peer, sentAt}] = append([]byte(nil), data...)
	return nil
}

func (s *DefaultStorage) DeleteInboundPage(peer types.PeerId, sentAt types.SentAt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inboundPages, inboundPageKey{peer, sentAt})
	return nil
}

func (s *DefaultStorage) GetOutboundStatusList() (types.OutboundStatusList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outboundStatus.Clone(), nil
}

func (s *DefaultStorage) PutOutboundStatusList(list types.OutboundStatusList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outboundStatus = list.Clone()
	return nil
}

func (s *DefaultStorage) GetOutboundPage(peer types.PeerId, idx types.PageIndex) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.outboundPages[outboundPageKey{peer, idx}]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *DefaultStorage) PutOutboundPage(peer types.PeerId, idx types.PageIndex, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outboundPages[outboundPageKey{peer, idx}] = append([]byte(nil), data...)
	return nil
}

func (s *DefaultStorage) DeleteOutboundPage(peer types.PeerId, idx types.PageIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.outboundPages, outboundPageKey{peer, idx})
	return nil
}

func (s *DefaultStorage) GetSignalPage(peer types.PeerId) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.signalPages[peer]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *DefaultStorage) PutSignalPage(peer types.PeerId, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signalPages[peer] = append([]byte(nil), data...)
	return nil
}

func (s *DefaultStorage) DeleteSignalPage(peer types.PeerId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.signalPages, peer)
	return nil
}

var _ types.Store = (*DefaultStorage)(nil)
