package modeling

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cpuctrl/sim/timing"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TickingComponent", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		ticker   *MockTicker
		tc       *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		ticker = NewMockTicker(mockCtrl)
		tc = NewTickingComponent("TC", engine, 1, ticker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should keep the name", func() {
		Expect(tc.Name()).To(Equal("TC"))
	})

	It("should tick again when the ticker makes progress", func() {
		ticker.EXPECT().Tick().Return(true)
		engine.EXPECT().Now().Return(timing.VTimeInSec(10))
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e timing.Event) {
				Expect(e.Time()).To(Equal(timing.VTimeInSec(11)))
			})

		Expect(tc.Handle(timing.MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should stop ticking if no progress is made", func() {
		ticker.EXPECT().Tick().Return(false)

		Expect(tc.Handle(timing.MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should schedule secondary ticks", func() {
		sc := NewSecondaryTickingComponent("SC", engine, 1, ticker)
		engine.EXPECT().Now().Return(timing.VTimeInSec(10))
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e timing.Event) {
				Expect(e.IsSecondary()).To(BeTrue())
				Expect(e.Time()).To(Equal(timing.VTimeInSec(10)))
			})

		sc.TickNow()
	})

	It("should panic on invalid names", func() {
		Expect(func() {
			NewTickingComponent("tc", engine, 1, ticker)
		}).To(Panic())
	})
})
