package hierarchy

import (
	"bytes"
	"database/sql"
	"io"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/cpuctrl/datarecording"
	"github.com/sarchlab/cpuctrl/mem/mem"

	_ "github.com/mattn/go-sqlite3"
)

var _ = Describe("Hierarchy", func() {
	var (
		mockCtrl *gomock.Controller
		ctrl1    *MockController
		ctrl2    *MockController
		h        *Hierarchy
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ctrl1 = NewMockController(mockCtrl)
		ctrl2 = NewMockController(mockCtrl)
		ctrl1.EXPECT().Name().Return("Core[0].Ctrl").AnyTimes()
		ctrl2.EXPECT().Name().Return("Core[1].Ctrl").AnyTimes()

		h = New()
		h.Register(ctrl1)
		h.Register(ctrl2)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should find controllers by name", func() {
		c, found := h.Controller("Core[1].Ctrl")

		Expect(found).To(BeTrue())
		Expect(c).To(BeIdenticalTo(ctrl2))

		_, found = h.Controller("Core[2].Ctrl")
		Expect(found).To(BeFalse())
	})

	It("should list controllers in registration order", func() {
		Expect(h.Controllers()).To(Equal([]mem.Controller{ctrl1, ctrl2}))
	})

	It("should panic on duplicated names", func() {
		dup := NewMockController(mockCtrl)
		dup.EXPECT().Name().Return("Core[0].Ctrl").AnyTimes()

		Expect(func() { h.Register(dup) }).To(Panic())
	})

	It("should sum stats", func() {
		s1 := mem.Stats{}
		s1.Of(mem.AccessKindData).Accesses = 3
		s2 := mem.Stats{}
		s2.Of(mem.AccessKindData).Accesses = 5
		s2.Of(mem.AccessKindInstruction).BufferHits = 1
		ctrl1.EXPECT().Stats().Return(s1)
		ctrl2.EXPECT().Stats().Return(s2)

		total := h.TotalStats()

		Expect(total.Of(mem.AccessKindData).Accesses).To(Equal(uint64(8)))
		Expect(total.Of(mem.AccessKindInstruction).BufferHits).
			To(Equal(uint64(1)))
	})

	It("should print the map of every controller", func() {
		ctrl1.EXPECT().PrintMap(gomock.Any()).Do(func(w io.Writer) {
			io.WriteString(w, "one\n")
		})
		ctrl2.EXPECT().PrintMap(gomock.Any()).Do(func(w io.Writer) {
			io.WriteString(w, "two\n")
		})

		buf := new(bytes.Buffer)
		h.PrintMap(buf)

		Expect(buf.String()).To(Equal("one\ntwo\n"))
	})

	It("should record stats", func() {
		db, err := sql.Open("sqlite3",
			filepath.Join(GinkgoT().TempDir(), "stats.sqlite3"))
		Expect(err).NotTo(HaveOccurred())
		recorder := datarecording.NewWithDB(db)
		defer recorder.Close()

		s1 := mem.Stats{}
		s1.Of(mem.AccessKindData).Delivered = 7
		ctrl1.EXPECT().Stats().Return(s1)
		ctrl2.EXPECT().Stats().Return(mem.Stats{})

		h.RecordStats(recorder)

		row := db.QueryRow("SELECT Delivered FROM controller_stats " +
			"WHERE Controller = 'Core[0].Ctrl' AND Kind = 'data'")
		var delivered uint64
		Expect(row.Scan(&delivered)).To(Succeed())
		Expect(delivered).To(Equal(uint64(7)))

		var count int
		Expect(db.QueryRow("SELECT COUNT(*) FROM controller_stats").
			Scan(&count)).To(Succeed())
		Expect(count).To(Equal(4))
	})
})
