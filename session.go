package querydesk

import (
	"github.com/nao1215/querydesk/domain/model"
	"github.com/nao1215/querydesk/engine"
)

// PlaceholderQuery is the editor text shown before any file is loaded
const PlaceholderQuery = "SELECT * FROM my_table LIMIT 100;"

// Session holds the dataset currently available to queries. At most one
// dataset is active; loading another replaces it.
//
// A Session is not safe for concurrent use. The interactive window only
// touches it from its update loop.
type Session struct {
	dataset *model.Dataset
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// Dataset returns the active dataset or nil
func (s *Session) Dataset() *model.Dataset {
	return s.dataset
}

// TableName returns the name queries use for the active dataset, or "" if none
func (s *Session) TableName() string {
	if s.dataset == nil {
		return ""
	}
	return s.dataset.Name()
}

// Loaded reports whether a dataset is active
func (s *Session) Loaded() bool {
	return s.dataset != nil
}

// Replace makes ds the active dataset
func (s *Session) Replace(ds *model.Dataset) {
	s.dataset = ds
}

// Reset drops the active dataset
func (s *Session) Reset() {
	s.dataset = nil
}

// DefaultQuery returns the query the editor is prefilled with. The table name
// is quoted only when it is not a plain identifier.
func (s *Session) DefaultQuery() string {
	if !s.Loaded() {
		return PlaceholderQuery
	}
	name := s.TableName()
	if !engine.IsPlainIdentifier(name) {
		name = engine.QuoteIdent(name)
	}
	return "SELECT * FROM " + name + " LIMIT 100;"
}
