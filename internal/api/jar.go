package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/reservekit/reserve-client/internal/storage"
)

// Jar is a minimal persistent cookie jar. The backend authenticates token
// refresh with an HttpOnly cookie; a browser keeps that cookie across
// sessions, so the client persists it the same way its other state is
// persisted. Cookies are stored per host name.
type Jar struct {
	mu      sync.Mutex
	storage storage.Storage
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// NewJar builds a jar over the given storage.
func NewJar(st storage.Storage) *Jar {
	return &Jar{storage: st}
}

// SetCookies merges the response cookies into the stored set for the
// host. An expired or max-age<0 cookie removes the stored one.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	all := j.load()
	host := u.Hostname()
	byName := map[string]storedCookie{}
	for _, c := range all[host] {
		byName[c.Name] = c
	}
	now := time.Now()
	for _, c := range cookies {
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		if c.MaxAge < 0 || (!expires.IsZero() && expires.Before(now)) {
			delete(byName, c.Name)
			continue
		}
		byName[c.Name] = storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Expires: expires}
	}

	merged := make([]storedCookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	all[host] = merged
	j.save(all)
}

// Cookies returns the live cookies stored for the host.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	all := j.load()
	now := time.Now()
	out := make([]*http.Cookie, 0)
	for _, c := range all[u.Hostname()] {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value, Path: c.Path})
	}
	return out
}

func (j *Jar) load() map[string][]storedCookie {
	all := map[string][]storedCookie{}
	raw, ok, err := j.storage.Get(storage.KeyCookies)
	if err != nil || !ok {
		return all
	}
	_ = json.Unmarshal([]byte(raw), &all)
	return all
}

func (j *Jar) save(all map[string][]storedCookie) {
	raw, err := json.Marshal(all)
	if err != nil {
		return
	}
	_ = j.storage.Set(storage.KeyCookies, string(raw))
}
