package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/xtding233/idle-balance/internal/logging"
)

var _ = Describe("FileWatcher", func() {
	var (
		loader  *Loader
		watcher *FileWatcher
		mu      sync.Mutex
		changed []string
	)

	seen := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), changed...)
	}

	BeforeEach(func() {
		changed = nil
		loader = NewLoader(GinkgoT().TempDir())
		Expect(os.MkdirAll(loader.Paths().ScenarioDir(), 0o755)).To(Succeed())
		Expect(os.WriteFile(loader.Paths().DefaultPath(), []byte("cost_growth: 1.15\n"), 0o644)).To(Succeed())

		var err error
		watcher, err = WatchLoader(logging.NewTestLogger(), loader, func(path string) {
			loader.Invalidate()
			mu.Lock()
			changed = append(changed, path)
			mu.Unlock()
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(watcher.Dirs).To(HaveLen(2))
		watcher.Start()
	})

	AfterEach(func() {
		watcher.Stop()
	})

	Context("when a tuning file is rewritten", func() {
		It("should report the path once per burst of writes", func() {
			path := loader.Paths().DefaultPath()
			for i := 0; i < 3; i++ {
				Expect(os.WriteFile(path, []byte("cost_growth: 1.2\n"), 0o644)).To(Succeed())
			}
			Eventually(seen, 2*time.Second, 10*time.Millisecond).Should(ContainElement(path))
			Consistently(func() int { return len(seen()) }, 200*time.Millisecond, 20*time.Millisecond).Should(Equal(1))
		})
	})

	Context("when a scenario file is created", func() {
		It("should report the new scenario path", func() {
			path := loader.Paths().ScenarioPath("hard")
			Expect(os.WriteFile(path, []byte("cost_growth: 1.3\n"), 0o644)).To(Succeed())
			Eventually(seen, 2*time.Second, 10*time.Millisecond).Should(ContainElement(path))
		})
	})

	Context("when a non-YAML file changes", func() {
		It("should ignore it", func() {
			path := filepath.Join(loader.Paths().TuningDir(), "notes.txt")
			Expect(os.WriteFile(path, []byte("scratch"), 0o644)).To(Succeed())
			Consistently(seen, 200*time.Millisecond, 20*time.Millisecond).Should(BeEmpty())
		})
	})

	Context("when the reload callback invalidates the loader", func() {
		It("should serve the new values", func() {
			raw, err := loader.LoadMerged("")
			Expect(err).NotTo(HaveOccurred())
			Expect(*raw.CostGrowth).To(Equal(1.15))

			Expect(os.WriteFile(loader.Paths().DefaultPath(), []byte("cost_growth: 1.25\n"), 0o644)).To(Succeed())
			Eventually(func() float64 {
				raw, err := loader.LoadMerged("")
				if err != nil || raw.CostGrowth == nil {
					return 0
				}
				return *raw.CostGrowth
			}, 2*time.Second, 20*time.Millisecond).Should(Equal(1.25))
		})
	})
})

var _ = Describe("FileWatcher lifecycle", func() {
	newWatcher := func() *FileWatcher {
		w, err := NewFileWatcher(logging.NewTestLogger(), []string{GinkgoT().TempDir()}, nil)
		Expect(err).NotTo(HaveOccurred())
		return w
	}

	It("should stop without having been started", func() {
		w := newWatcher()
		done := make(chan struct{})
		go func() {
			w.Stop()
			close(done)
		}()
		Eventually(done, time.Second).Should(BeClosed())
	})

	It("should tolerate repeated Start and Stop calls", func() {
		w := newWatcher()
		w.Start()
		w.Start()
		Expect(w.Stop).NotTo(Panic())
		Expect(w.Stop).NotTo(Panic())
	})
})

var _ = Describe("relevant", func() {
	It("should accept yaml and yml but not other extensions", func() {
		Expect(relevant(fsnotify.Event{Name: "a/default.yaml", Op: fsnotify.Write})).To(BeTrue())
		Expect(relevant(fsnotify.Event{Name: "a/b.YML", Op: fsnotify.Create})).To(BeTrue())
		Expect(relevant(fsnotify.Event{Name: "a/b.yaml.swp", Op: fsnotify.Write})).To(BeFalse())
		Expect(relevant(fsnotify.Event{Name: "a/b.yaml", Op: fsnotify.Chmod})).To(BeFalse())
	})
})
