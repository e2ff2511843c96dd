package rickmorty

import "strings"

// Request names one page the pager wants fetched.
type Request struct {
	Term string
	Page int
}

// Pager tracks the pages loaded for the current search term. It never does
// I/O: SetTerm and LoadMore return the Request to run, and Apply takes the
// result back. Results for an older term are dropped.
type Pager struct {
	term     string
	size     int
	pages    []*Page
	inflight map[int]bool
	err      error
}

// NewPager returns an idle pager with no term.
func NewPager() *Pager {
	return &Pager{inflight: make(map[int]bool)}
}

// Term returns the active search term.
func (p *Pager) Term() string {
	return p.term
}

// Size returns how many pages are wanted for the current term.
func (p *Pager) Size() int {
	return p.size
}

// SetTerm starts over for a new search term, wanting one page. An empty term
// asks for nothing.
func (p *Pager) SetTerm(term string) (Request, bool) {
	term = strings.TrimSpace(term)
	if term != p.term {
		p.term = term
		p.pages = nil
		p.inflight = make(map[int]bool)
	}
	p.err = nil
	if term == "" {
		p.size = 0
		return Request{}, false
	}
	p.size = 1
	if len(p.pages) > 1 {
		p.pages = p.pages[:1]
	}
	for pg := range p.inflight {
		if pg > 1 {
			delete(p.inflight, pg)
		}
	}
	if p.loaded(1) || p.inflight[1] {
		return Request{}, false
	}
	p.inflight[1] = true
	return Request{Term: term, Page: 1}, true
}

// LoadMore asks for the next page when the API reported more pages than are
// currently wanted. Nothing is requested while the last wanted page is still
// loading or came back empty.
func (p *Pager) LoadMore() (Request, bool) {
	if p.term == "" || p.size == 0 || !p.loaded(p.size) {
		return Request{}, false
	}
	if last := p.pages[p.size-1]; last.Empty() {
		return Request{}, false
	}
	if p.PageCount() <= p.size {
		return Request{}, false
	}
	p.size++
	p.inflight[p.size] = true
	return Request{Term: p.term, Page: p.size}, true
}

// Apply records the outcome of req. It returns false when the result is stale
// (another term is active, or the page is no longer wanted).
func (p *Pager) Apply(req Request, page Page, err error) bool {
	if req.Term != p.term || req.Page < 1 || req.Page > p.size {
		return false
	}
	delete(p.inflight, req.Page)
	if err != nil {
		p.err = err
		// Forget the page so a later LoadMore asks for it again.
		if req.Page == p.size && req.Page > 1 {
			p.size--
		}
		return true
	}
	p.err = nil
	for len(p.pages) < req.Page {
		p.pages = append(p.pages, nil)
	}
	pg := page
	p.pages[req.Page-1] = &pg
	return true
}

// Characters returns the loaded characters in page order, stopping at the
// first page that has not arrived yet.
func (p *Pager) Characters() []Character {
	var out []Character
	for i := 0; i < p.size && i < len(p.pages); i++ {
		if p.pages[i] == nil {
			break
		}
		out = append(out, p.pages[i].Results...)
	}
	return out
}

// Loading reports whether any wanted page is in flight.
func (p *Pager) Loading() bool {
	return len(p.inflight) > 0
}

// PageCount returns the total number of pages the API reported for the term.
func (p *Pager) PageCount() int {
	if !p.loaded(1) {
		return 0
	}
	return p.pages[0].Info.Pages
}

// HasMore reports whether LoadMore would request something once idle.
func (p *Pager) HasMore() bool {
	return p.size > 0 && p.PageCount() > p.size
}

// Err returns the error of the most recent failed request, if any.
func (p *Pager) Err() error {
	return p.err
}

func (p *Pager) loaded(page int) bool {
	return page >= 1 && page <= len(p.pages) && p.pages[page-1] != nil
}
