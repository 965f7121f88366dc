package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/hackathon-platform-backend/errs"
	"github.com/rpupo63/hackathon-platform-backend/models"
	"gorm.io/gorm"
)

// Scope restricts queries to the hackathons a caller may see. Organizers see
// the hackathons they organize; superadmins see everything.
type Scope struct {
	UserID     uuid.UUID
	Superadmin bool
}

func ScopeFor(u models.User) Scope {
	return Scope{UserID: u.ID, Superadmin: u.IsSuperadmin()}
}

// Hackathons filters a query over the hackathons table.
func (s Scope) Hackathons(db *gorm.DB) *gorm.DB {
	if s.Superadmin {
		return db
	}
	return db.Where("hackathons.organizer_id = ?", s.UserID)
}

// Dependents filters a query over a table with a hackathon_id column.
func (s Scope) Dependents(db *gorm.DB) *gorm.DB {
	if s.Superadmin {
		return db
	}
	return db.Where("hackathon_id IN (SELECT id FROM hackathons WHERE organizer_id = ?)", s.UserID)
}

// Permits reports whether the caller may read or change h.
func (s Scope) Permits(h models.Hackathon) bool {
	return s.Superadmin || h.OrganizerID == s.UserID
}

// Filter narrows a hackathon listing. Search matches name or description,
// ignoring case.
type Filter struct {
	Status models.HackathonStatus
	Search string
}

func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	if f.Status != "" {
		db = db.Where("hackathons.status = ?", string(f.Status))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		db = db.Where(`(LOWER(hackathons.name) LIKE ? ESCAPE '\' OR LOWER(hackathons.description) LIKE ? ESCAPE '\')`, like, like)
	}
	return db
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page selects rows [(Number-1)*Size, Number*Size) of an ordered result.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) (Page, error) {
	if number < 1 {
		return Page{}, errs.NewInvalidQueryParamError("page", "must be at least 1")
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, errs.NewInvalidQueryParamError("size", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	return Page{Number: number, Size: size}, nil
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Size)
}
