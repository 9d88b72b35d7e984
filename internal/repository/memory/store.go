package memory

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ihdim5/healthrecord-api/internal/model"
)

// Store is the sole owner of the in-memory collections. It is constructed
// once at process start with the two seeded singleton accounts and handed by
// reference to every caller; nothing reads these collections through package
// globals. A single mutex keeps each operation atomic, so no reader ever
// observes a half-applied mutation.
type Store struct {
	mu sync.Mutex

	patients []*model.Patient
	doctors  []*model.Doctor
	admin    *model.Admin
	gov      *model.Government
	audit    []*model.AuditEntry

	patientSeq int
	doctorSeq  int
	entryStamp int64
}

// Options controls store construction. The admin and government singletons
// are always seeded; the demo patients and doctors are optional.
type Options struct {
	SeedDemoData bool
}

func NewStore(opts Options) *Store {
	s := &Store{
		admin: seedAdmin(),
		gov:   seedGovernment(),
	}
	if opts.SeedDemoData {
		s.patients = seedPatients()
		s.doctors = seedDoctors()
	}
	s.patientSeq = len(s.patients)
	s.doctorSeq = len(s.doctors)
	return s
}

// nextPatientID returns the next identifier in the P#### sequence.
func (s *Store) nextPatientID() string {
	s.patientSeq++
	return fmt.Sprintf("P%04d", s.patientSeq)
}

// nextDoctorID returns the next identifier in the D### sequence.
func (s *Store) nextDoctorID() string {
	s.doctorSeq++
	return fmt.Sprintf("D%03d", s.doctorSeq)
}

// nextEntryID builds a clinical sub-record id from a prefix and a millisecond
// stamp, bumped monotonically so two appends in the same millisecond still
// get distinct ids.
func (s *Store) nextEntryID(prefix string) string {
	now := time.Now().UnixMilli()
	if now <= s.entryStamp {
		now = s.entryStamp + 1
	}
	s.entryStamp = now
	return fmt.Sprintf("%s%d", prefix, now)
}

// findPatient returns the live record; callers hold s.mu.
func (s *Store) findPatient(id string) *model.Patient {
	for _, p := range s.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// findDoctor returns the live record; callers hold s.mu.
func (s *Store) findDoctor(id string) *model.Doctor {
	for _, d := range s.doctors {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// clone returns a deep, independent copy of src via a JSON round-trip, the
// same copy semantics the collections expose everywhere.
func clone[T any](src *T) *T {
	raw, err := json.Marshal(src)
	if err != nil {
		panic(fmt.Sprintf("memory store: clone marshal: %v", err))
	}
	dst := new(T)
	if err := json.Unmarshal(raw, dst); err != nil {
		panic(fmt.Sprintf("memory store: clone unmarshal: %v", err))
	}
	return dst
}
