package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

type browserClientStub struct {
	mu          sync.Mutex
	listCalls   []marketplace.ListParameters
	totalCount  int
	gate        chan struct{} // first list call blocks on it when set
	transitions []string
}

func (s *browserClientStub) GetApplications(_ models.OfferType, params marketplace.ListParameters) (marketplace.ApplicationPage, error) {

	s.mu.Lock()
	s.listCalls = append(s.listCalls, params)
	gate := s.gate
	firstCall := len(s.listCalls) == 1
	total := s.totalCount
	s.mu.Unlock()

	if gate != nil && firstCall {
		<-gate
	}
	return marketplace.ApplicationPage{TotalCount: total}, nil
}

func (s *browserClientStub) GetApplicationsByOffer(offerType models.OfferType, _ string, params marketplace.ListParameters) (marketplace.ApplicationPage, error) {
	return s.GetApplications(offerType, params)
}

func (s *browserClientStub) recordTransition(action, applicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transitions = append(s.transitions, fmt.Sprintf("%v %v", action, applicationID))
	return nil
}

func (s *browserClientStub) AcceptApplication(id string, _ string) error {
	return s.recordTransition("accept", id)
}

func (s *browserClientStub) RejectApplication(id string, _ string) error {
	return s.recordTransition("reject", id)
}

func (s *browserClientStub) ShortlistApplication(id string, _ string) error {
	return s.recordTransition("shortlist", id)
}

func (s *browserClientStub) ScheduleInterview(id string, _ string) error {
	return s.recordTransition("interview", id)
}

func (s *browserClientStub) HoldApplication(id string, _ string) error {
	return s.recordTransition("hold", id)
}

func (s *browserClientStub) MarkApplicationViewed(id string, _ string) error {
	return s.recordTransition("viewed", id)
}

func (s *browserClientStub) HireApplication(id string, _ string) error {
	return s.recordTransition("hire", id)
}

func (s *browserClientStub) lastListCall() marketplace.ListParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls[len(s.listCalls)-1]
}

func (s *browserClientStub) listCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listCalls)
}

func Test_Browser_Reload_ShouldUseDefaultOrdering(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 30}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	_, err := browser.Reload()
	assert.NoError(err)

	params := stub.lastListCall()
	assert.Equal("-created_at", params.Ordering)
	assert.Equal(1, params.Page)
	assert.Equal(10, params.PageSize)
}

func Test_Browser_SetPageSize_ShouldResetToFirstPage(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 100}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	browser.SetPage(3)
	browser.SetPageSize(20)

	_, err := browser.Reload()
	assert.NoError(err)

	params := stub.lastListCall()
	assert.Equal(1, params.Page)
	assert.Equal(20, params.PageSize)
}

func Test_Browser_SetPageSize_UnofferedSize_ShouldSnap(t *testing.T) {

	stub := &browserClientStub{totalCount: 100}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	browser.SetPageSize(12)

	_, err := browser.Reload()
	assert.NoError(t, err)
	assert.Equal(t, 10, stub.lastListCall().PageSize)
}

func Test_Browser_SetFilter_ShouldResetToFirstPage(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 100}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	browser.SetPage(3)
	assert.NoError(browser.SetFilter(models.FilterStatus, "pending"))

	_, err := browser.Reload()
	assert.NoError(err)

	params := stub.lastListCall()
	assert.Equal(1, params.Page)
	assert.Equal("pending", params.Status)
}

func Test_Browser_Search_ShouldResetToFirstPage(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 100}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	browser.SetPage(4)
	browser.Search("python")

	_, err := browser.Reload()
	assert.NoError(err)

	params := stub.lastListCall()
	assert.Equal(1, params.Page)
	assert.Equal("python", params.Search)
}

func Test_Browser_ResetFilters_ShouldRestoreDefaults(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 100}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	assert.NoError(browser.SetFilter(models.FilterStatus, "rejected"))
	browser.Search("java")
	browser.ResetFilters()

	_, err := browser.Reload()
	assert.NoError(err)

	params := stub.lastListCall()
	assert.Empty(params.Status)
	assert.Empty(params.Search)
	assert.Equal("-created_at", params.Ordering)
}

func Test_Browser_Reload_PageBeyondLast_ShouldClampState(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 10}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	browser.SetPage(5)

	view, err := browser.Reload()
	assert.NoError(err)
	assert.Equal(1, view.Pagination.CurrentPage)
	assert.Equal(1, view.Pagination.TotalPages)
}

func Test_Browser_StaleReload_ShouldBeDiscarded(t *testing.T) {

	assert := assert.New(t)

	gate := make(chan struct{})
	stub := &browserClientStub{totalCount: 50, gate: gate}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	staleResult := make(chan error)
	go func() {
		_, err := browser.Reload()
		staleResult <- err
	}()

	// wait until the first reload is in flight
	deadline := time.Now().Add(5 * time.Second)
	for stub.listCallCount() == 0 {
		if time.Now().After(deadline) {
			assert.FailNow("first reload never started")
		}
		time.Sleep(time.Millisecond)
	}

	view, err := browser.Reload()
	assert.NoError(err)
	assert.Equal(50, view.Pagination.TotalCount)

	close(gate)

	select {
	case err := <-staleResult:
		assert.ErrorIs(err, ErrStaleResponse)
	case <-time.After(5 * time.Second):
		assert.FailNow("stale reload never returned")
	}
}

func Test_Browser_ApplyTransition_ShouldRefetchList(t *testing.T) {

	assert := assert.New(t)

	stub := &browserClientStub{totalCount: 20}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	view, err := browser.ApplyTransition(ActionAccept, "42", "")
	assert.NoError(err)

	assert.Equal([]string{"accept 42"}, stub.transitions)
	assert.Equal(1, stub.listCallCount())
	assert.Equal(20, view.Pagination.TotalCount)
}

func Test_Browser_ApplyTransition_UnknownAction_ShouldFail(t *testing.T) {

	stub := &browserClientStub{}
	browser := NewApplicationBrowser(stub, models.OfferJob, "")

	_, err := browser.ApplyTransition("promote", "42", "")

	assert.Error(t, err)
	assert.Zero(t, stub.listCallCount())
}
