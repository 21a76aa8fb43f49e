package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/notch-0314/heattech-backend/internal"
)

// FileStorage keeps every table in memory and mirrors each one to a JSON
// file on mutation. Used for development and tests; postgres serves
// production.
type FileStorage struct {
	users    map[int64]*internal.User
	master   map[int64]*internal.CopingMaster
	messages map[int64]*internal.CopingMessage
	daily    map[int64]*internal.DailyMessage

	nextUserID    int64
	nextMasterID  int64
	nextMessageID int64
	nextDailyID   int64

	mu sync.RWMutex

	usersFile    string
	masterFile   string
	messagesFile string
	dailyFile    string

	logger internal.Logger
}

func NewFileStorage(usersFile, masterFile, messagesFile, dailyFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:        make(map[int64]*internal.User),
		master:       make(map[int64]*internal.CopingMaster),
		messages:     make(map[int64]*internal.CopingMessage),
		daily:        make(map[int64]*internal.DailyMessage),
		usersFile:    usersFile,
		masterFile:   masterFile,
		messagesFile: messagesFile,
		dailyFile:    dailyFile,
		logger:       logger,
	}

	if err := s.loadAll(); err != nil {
		logger.Errorf("storage: failed to load data files: %v", err)
		return nil, err
	}
	return s, nil
}

func (s *FileStorage) loadAll() error {
	var users []*internal.User
	if err := loadJSONFile(s.usersFile, &users); err != nil {
		return err
	}
	for _, u := range users {
		s.users[u.UserID] = u
		if u.UserID >= s.nextUserID {
			s.nextUserID = u.UserID
		}
	}

	var master []*internal.CopingMaster
	if err := loadJSONFile(s.masterFile, &master); err != nil {
		return err
	}
	for _, m := range master {
		s.master[m.CopingMasterID] = m
		if m.CopingMasterID >= s.nextMasterID {
			s.nextMasterID = m.CopingMasterID
		}
	}

	var messages []*internal.CopingMessage
	if err := loadJSONFile(s.messagesFile, &messages); err != nil {
		return err
	}
	for _, m := range messages {
		s.messages[m.CopingMessageID] = m
		if m.CopingMessageID >= s.nextMessageID {
			s.nextMessageID = m.CopingMessageID
		}
	}

	var daily []*internal.DailyMessage
	if err := loadJSONFile(s.dailyFile, &daily); err != nil {
		return err
	}
	for _, m := range daily {
		s.daily[m.DailyMessageID] = m
		if m.DailyMessageID >= s.nextDailyID {
			s.nextDailyID = m.DailyMessageID
		}
	}

	return nil
}

func loadJSONFile(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}
	return os.Rename(tempFile, filePath)
}

// callers must hold s.mu
func (s *FileStorage) persistUsers() error {
	list := make([]*internal.User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserID < list[j].UserID })
	return atomicWriteFileJSON(s.usersFile, list)
}

func (s *FileStorage) persistMaster() error {
	list := make([]*internal.CopingMaster, 0, len(s.master))
	for _, m := range s.master {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CopingMasterID < list[j].CopingMasterID })
	return atomicWriteFileJSON(s.masterFile, list)
}

func (s *FileStorage) persistMessages() error {
	list := make([]*internal.CopingMessage, 0, len(s.messages))
	for _, m := range s.messages {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CopingMessageID < list[j].CopingMessageID })
	return atomicWriteFileJSON(s.messagesFile, list)
}

func (s *FileStorage) persistDaily() error {
	list := make([]*internal.DailyMessage, 0, len(s.daily))
	for _, m := range s.daily {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DailyMessageID < list[j].DailyMessageID })
	return atomicWriteFileJSON(s.dailyFile, list)
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, u *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.UserName == u.UserName {
			return errors.New("user_name already taken")
		}
		if existing.Email == u.Email {
			return errors.New("email already taken")
		}
	}

	s.nextUserID++
	u.UserID = s.nextUserID
	cp := *u
	s.users[u.UserID] = &cp
	return s.persistUsers()
}

func (s *FileStorage) GetUserByName(ctx context.Context, userName string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []internal.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

// --- CopingMasterRepository ---

func (s *FileStorage) FindCoping(ctx context.Context, typeName string, scoreID, timeValue int) ([]internal.CopingMaster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []internal.CopingMaster
	for _, m := range s.master {
		if m.TypeName == typeName && m.ScoreID == scoreID && m.Time == timeValue {
			records = append(records, *m)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CopingMasterID < records[j].CopingMasterID })
	return records, nil
}

func (s *FileStorage) ReplaceAll(ctx context.Context, records []internal.CopingMaster) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.master = make(map[int64]*internal.CopingMaster, len(records))
	s.nextMasterID = 0
	for _, m := range records {
		s.nextMasterID++
		m.CopingMasterID = s.nextMasterID
		cp := m
		s.master[m.CopingMasterID] = &cp
	}
	return s.persistMaster()
}

// --- CopingMessageRepository ---

func (s *FileStorage) SaveCopingMessage(ctx context.Context, m *internal.CopingMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMessageID++
	m.CopingMessageID = s.nextMessageID
	cp := *m
	s.messages[m.CopingMessageID] = &cp
	return s.persistMessages()
}

func (s *FileStorage) GetCopingMessage(ctx context.Context, copingMessageID int64) (*internal.CopingMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[copingMessageID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *FileStorage) ListCopingMessagesForDay(ctx context.Context, userID int64, day string) ([]internal.CopingMessage, error) {
	return s.listMessages(userID, day, false)
}

func (s *FileStorage) ListFeedbackForDay(ctx context.Context, userID int64, day string) ([]internal.CopingMessage, error) {
	return s.listMessages(userID, day, true)
}

func (s *FileStorage) listMessages(userID int64, day string, feedbackOnly bool) ([]internal.CopingMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []internal.CopingMessage
	for _, m := range s.messages {
		if m.UserID != userID || m.CreateDatetime.Format("2006-01-02") != day {
			continue
		}
		if feedbackOnly && m.SatisfactionScore == nil {
			continue
		}
		messages = append(messages, *m)
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CopingMessageID < messages[j].CopingMessageID })
	return messages, nil
}

func (s *FileStorage) SetHeartRateBefore(ctx context.Context, copingMessageID int64, bpm int) error {
	return s.updateMessage(copingMessageID, func(m *internal.CopingMessage) {
		m.HeartRateBefore = &bpm
	})
}

func (s *FileStorage) SetSatisfactionScore(ctx context.Context, copingMessageID int64, score string) error {
	return s.updateMessage(copingMessageID, func(m *internal.CopingMessage) {
		m.SatisfactionScore = &score
	})
}

func (s *FileStorage) SetHeartRateAfter(ctx context.Context, copingMessageID int64, bpm int) error {
	return s.updateMessage(copingMessageID, func(m *internal.CopingMessage) {
		m.HeartRateAfter = &bpm
	})
}

func (s *FileStorage) updateMessage(copingMessageID int64, apply func(*internal.CopingMessage)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[copingMessageID]
	if !ok {
		return ErrNotFound
	}
	apply(m)
	return s.persistMessages()
}

// --- DailyMessageRepository ---

func (s *FileStorage) SaveDailyMessage(ctx context.Context, m *internal.DailyMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDailyID++
	m.DailyMessageID = s.nextDailyID
	cp := *m
	s.daily[m.DailyMessageID] = &cp
	return s.persistDaily()
}

func (s *FileStorage) GetDailyMessageForDay(ctx context.Context, userID int64, day string) (*internal.DailyMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *internal.DailyMessage
	for _, m := range s.daily {
		if m.UserID != userID || m.CreateDatetime.Format("2006-01-02") != day {
			continue
		}
		if found == nil || m.DailyMessageID < found.DailyMessageID {
			found = m
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	cp := *found
	return &cp, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ CopingMasterRepository = (*FileStorage)(nil)
var _ CopingMessageRepository = (*FileStorage)(nil)
var _ DailyMessageRepository = (*FileStorage)(nil)
