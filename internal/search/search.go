// Package search filters and ranks the user directory.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/normalize"
)

// Directory lists every user.
type Directory interface {
	ListUsers(ctx context.Context) ([]*data.User, error)
}

// Searcher runs directory searches for chat recipient and profile discovery.
type Searcher struct {
	dir Directory
}

// NewSearcher returns a Searcher over dir.
func NewSearcher(dir Directory) *Searcher {
	return &Searcher{dir: dir}
}

// Users returns the users other than viewerID whose name or email contains
// term, starts-with matches first. A blank term matches nobody and skips the
// directory fetch.
func (s *Searcher) Users(ctx context.Context, viewerID, term string) ([]*data.User, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	users, err := s.dir.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return Rank(users, viewerID, term), nil
}

// Profiles returns the profiles matching term, see Profiles.
func (s *Searcher) Profiles(ctx context.Context, term string) ([]*data.User, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	users, err := s.dir.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	return Profiles(users, term), nil
}

// Rank filters users to those matching term on name or email, excluding
// viewerID, and orders starts-with matches before other substring matches.
// Matching is case-insensitive. Within each group the input order is kept.
func Rank(users []*data.User, viewerID, term string) []*data.User {
	t := normalize.Fold(term)
	if t == "" {
		return nil
	}

	type match struct {
		user   *data.User
		prefix bool
	}
	var matches []match
	for _, u := range users {
		if u == nil || u.IDHex() == viewerID {
			continue
		}
		name := normalize.Fold(u.Label())
		email := normalize.Fold(u.Email)
		if !strings.Contains(name, t) && !strings.Contains(email, t) {
			continue
		}
		matches = append(matches, match{
			user:   u,
			prefix: strings.HasPrefix(name, t) || strings.HasPrefix(email, t),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].prefix && !matches[j].prefix
	})

	out := make([]*data.User, len(matches))
	for i, m := range matches {
		out[i] = m.user
	}
	return out
}

// Profiles filters the directory for the profile search page: users with a name
// and role whose name, company, tags or skills contain term.
func Profiles(users []*data.User, term string) []*data.User {
	t := normalize.Fold(term)
	if t == "" {
		return nil
	}

	var out []*data.User
	for _, u := range users {
		if u == nil || u.Label() == "" || u.Role == "" {
			continue
		}
		if containsFold(u.Label(), t) || containsFold(u.CompanyName, t) ||
			anyContainsFold(u.Tags, t) || anyContainsFold(u.Skills, t) {
			out = append(out, u)
		}
	}
	return out
}

func containsFold(s, folded string) bool {
	return s != "" && strings.Contains(normalize.Fold(s), folded)
}

func anyContainsFold(values []string, folded string) bool {
	for _, v := range values {
		if containsFold(v, folded) {
			return true
		}
	}
	return false
}
