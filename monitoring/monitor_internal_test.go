package monitoring

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cpuctrl/sim/modeling"
	"github.com/sarchlab/cpuctrl/sim/timing"
)

type sampleComponent struct {
	*modeling.ComponentBase

	Pending int
}

func (c *sampleComponent) Handle(_ timing.Event) error {
	return nil
}

func (c *sampleComponent) Print(w io.Writer) {
	fmt.Fprintf(w, "pending: %d\n", c.Pending)
}

func (c *sampleComponent) PrintMap(w io.Writer) {
	fmt.Fprintf(w, "%s\n", c.Name())
}

type silentComponent struct {
	*modeling.ComponentBase
}

func (c *silentComponent) Handle(_ timing.Event) error {
	return nil
}

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		engine *timing.SerialEngine
	)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		m.router().ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterComponent(&sampleComponent{
			ComponentBase: modeling.NewComponentBase("Ctrl"),
			Pending:       3,
		})
		m.RegisterComponent(&silentComponent{
			ComponentBase: modeling.NewComponentBase("Other"),
		})
	})

	It("should list components", func() {
		rec := get("/api/list_components")

		Expect(rec.Body.String()).To(Equal(`["Ctrl","Other"]`))
	})

	It("should report the current time", func() {
		rec := get("/api/now")

		Expect(rec.Body.String()).To(Equal(`{"now":0.0000000000}`))
	})

	It("should dump components", func() {
		rec := get("/api/dump/Ctrl")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("pending: 3\n"))
	})

	It("should print the map of components", func() {
		rec := get("/api/map/Ctrl")

		Expect(rec.Body.String()).To(Equal("Ctrl\n"))
	})

	It("should refuse to dump components that cannot print", func() {
		rec := get("/api/dump/Other")

		Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
	})

	It("should return 404 for unknown components", func() {
		rec := get("/api/dump/Unknown")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(Equal("Component not found"))
	})

	It("should serialize component details", func() {
		rec := get("/api/component/Ctrl")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Pending"))
	})

	It("should reject malformed field requests", func() {
		rec := get("/api/field/notjson")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Accesses", 10)
		bar.IncrementInProgress(4)
		bar.MoveInProgressToFinished(3)

		rec := get("/api/progress")

		Expect(rec.Body.String()).To(ContainSubstring(`"name":"Accesses"`))
		Expect(rec.Body.String()).To(ContainSubstring(`"finished":3`))
		Expect(rec.Body.String()).To(ContainSubstring(`"in_progress":1`))

		m.CompleteProgressBar(bar)

		Expect(get("/api/progress").Body.String()).To(Equal("[]"))
	})

	It("should tell when a progress bar is done", func() {
		bar := m.CreateProgressBar("Accesses", 2)
		bar.IncrementFinished(1)
		Expect(bar.Done()).To(BeFalse())

		bar.IncrementFinished(1)
		Expect(bar.Done()).To(BeTrue())
	})

	It("should use a random port for reserved port numbers", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})
})
