package null

import (
	"github.com/kestrelui/core/driver"
	"github.com/kestrelui/core/wsi"
)

func (g *gpu) NewSwapchain(win wsi.Window, imageCount int) (driver.Swapchain, error) {
	if imageCount <= 0 {
		imageCount = 2
	}
	sc := &swapchain{pf: driver.BGRA8un}
	sc.views = make([]driver.ImageView, imageCount)
	sc.imgs = make([]*image, imageCount)
	for i := range sc.views {
		img := &image{
			pf:     sc.pf,
			size:   driver.Dim3D{Width: win.Width(), Height: win.Height()},
			layers: 1,
			levels: 1,
			usage:  driver.URenderTarget,
		}
		v, _ := img.NewView(driver.IView2D, 0, 1, 0, 1)
		sc.imgs[i] = img
		sc.views[i] = v
	}
	return sc, nil
}

type swapchain struct {
	pf      driver.PixelFmt
	views   []driver.ImageView
	imgs    []*image
	current int
	hasCur  bool
}

func (s *swapchain) Destroy() {}

func (s *swapchain) Views() []driver.ImageView { return s.views }

func (s *swapchain) Next(cb driver.CmdBuffer) (int, error) {
	s.current = (s.current + 1) % len(s.views)
	s.hasCur = true
	return s.current, nil
}

func (s *swapchain) Present(index int, cb driver.CmdBuffer) error {
	s.hasCur = false
	return nil
}

func (s *swapchain) Recreate() error { return nil }

func (s *swapchain) Format() driver.PixelFmt { return s.pf }

func (s *swapchain) Image(index int) driver.Image { return s.imgs[index] }
