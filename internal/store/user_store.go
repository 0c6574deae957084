package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"userstore/internal/domain"
)

// Options tune a UserFileStore. The zero value is the legacy behaviour;
// DefaultOptions is what the service runs with.
type Options struct {
	// SerializeWrites runs every mutation under a per-store mutex. Without
	// it two concurrent mutations may read the same snapshot and the second
	// write silently drops the first.
	SerializeWrites bool
	// ExcludeSelfOnUpdate checks the merged record against every other
	// record on Update. Without it only the fields present in the patch are
	// checked, against the whole collection including the target, so an
	// unchanged username or email collides with itself.
	ExcludeSelfOnUpdate bool
	// Passphrase, when set, seals the document at rest.
	Passphrase string
	// FileMode for the document; 0o600 when zero.
	FileMode os.FileMode
}

// DefaultOptions serialises writes and excludes the target record from its
// own update check.
func DefaultOptions() Options {
	return Options{
		SerializeWrites:     true,
		ExcludeSelfOnUpdate: true,
		FileMode:            0o600,
	}
}

// UserFileStore keeps the user collection in one JSON file.
type UserFileStore struct {
	path string
	opts Options
	mu   sync.Mutex
}

// NewUserFileStore returns a store backed by the document at path. The file
// is not touched until the first operation.
func NewUserFileStore(path string, opts Options) *UserFileStore {
	if opts.FileMode == 0 {
		opts.FileMode = 0o600
	}
	return &UserFileStore{path: path, opts: opts}
}

// Path returns the backing document path.
func (s *UserFileStore) Path() string { return s.path }

func (s *UserFileStore) lock() func() {
	if !s.opts.SerializeWrites {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Init writes an empty collection when the document does not exist yet,
// creating its directory as needed. It reports whether it created the file.
func (s *UserFileStore) Init() (bool, error) {
	defer s.lock()()

	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return false, fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
		}
	}
	if err := s.save(domain.Document{}); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the stored document as read. Unlike the mutations it does
// not treat a missing file as empty.
func (s *UserFileStore) List() (json.RawMessage, error) {
	b, err := s.read()
	if err != nil {
		return nil, err
	}
	if isBlank(b) {
		return json.RawMessage(emptyDocument), nil
	}
	if !json.Valid(b) {
		return nil, domain.ErrMalformedStore
	}
	return json.RawMessage(b), nil
}

// Create validates u, checks it against every stored record and appends it.
func (s *UserFileStore) Create(u domain.User) (domain.User, error) {
	if missing := u.Missing(domain.UniqueFields...); len(missing) > 0 {
		return nil, &domain.ValidationError{Missing: missing}
	}

	defer s.lock()()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	if dup := collisions(doc.Users, u, -1); len(dup) > 0 {
		return nil, &domain.DuplicateError{Fields: dup}
	}

	rec := u.Clone()
	doc.Users = append(doc.Users, rec)
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Update merges patch onto the record whose id renders as id and returns
// the merged record.
func (s *UserFileStore) Update(id string, patch domain.User) (domain.User, error) {
	defer s.lock()()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(doc.Users, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	merged := doc.Users[idx].Merge(patch)
	// Legacy mode checks the supplied values against every record, the
	// target included, so resubmitting an unchanged username collides.
	candidate, skip := patch, -1
	if s.opts.ExcludeSelfOnUpdate {
		candidate, skip = merged, idx
	}
	if dup := collisions(doc.Users, candidate, skip); len(dup) > 0 {
		return nil, &domain.DuplicateError{Fields: dup}
	}

	doc.Users[idx] = merged
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return merged.Clone(), nil
}

// Delete removes the record whose id renders as id.
func (s *UserFileStore) Delete(id string) error {
	defer s.lock()()

	doc, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(doc.Users, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	doc.Users = append(doc.Users[:idx], doc.Users[idx+1:]...)
	return s.save(doc)
}

// read returns the plaintext document bytes.
func (s *UserFileStore) read() ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}
	if s.opts.Passphrase == "" || isBlank(b) {
		return b, nil
	}
	pt, err := open(s.opts.Passphrase, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageRead, err)
	}
	return pt, nil
}

// load reads and decodes the collection; an absent file is empty.
func (s *UserFileStore) load() (domain.Document, error) {
	b, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		return domain.Document{Users: []domain.User{}}, nil
	}
	if err != nil {
		return domain.Document{}, err
	}
	doc, err := decodeDocument(b)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %w", domain.ErrMalformedStore, err)
	}
	return doc, nil
}

func (s *UserFileStore) save(doc domain.Document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	if s.opts.Passphrase != "" {
		if b, err = seal(s.opts.Passphrase, b); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
		}
	}
	if err := writeFile(s.path, b, s.opts.FileMode); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return nil
}

// collisions returns the unique fields of u already held by another record,
// ignoring the record at index skip.
func collisions(users []domain.User, u domain.User, skip int) []string {
	hit := make(map[string]bool, len(domain.UniqueFields))
	for i, other := range users {
		if i == skip {
			continue
		}
		for _, f := range u.Collisions(other) {
			hit[f] = true
		}
	}
	var out []string
	for _, f := range domain.UniqueFields {
		if hit[f] {
			out = append(out, f)
		}
	}
	return out
}

func indexOf(users []domain.User, id string) int {
	for i, u := range users {
		if _, ok := u[domain.FieldID]; ok && u.IDString() == id {
			return i
		}
	}
	return -1
}

// Compile-time assertion that UserFileStore implements domain.UserStore.
var _ domain.UserStore = (*UserFileStore)(nil)
