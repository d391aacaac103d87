package null

import "github.com/kestrelui/core/driver"

// cmdBuffer records commands into an in-memory log instead of
// a real command stream. It exists to let calling code drive
// the full driver.CmdBuffer recording protocol (Begin/Begin*/
// End) and observe ordering, without needing a GPU to execute
// against.
type cmdBuffer struct {
	recording bool
	ops       []string
}

func (c *cmdBuffer) Destroy() {}

func (c *cmdBuffer) Begin() error {
	c.recording = true
	c.ops = c.ops[:0]
	return nil
}

func (c *cmdBuffer) BeginPass(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) {
	c.ops = append(c.ops, "BeginPass")
}

func (c *cmdBuffer) NextSubpass() { c.ops = append(c.ops, "NextSubpass") }
func (c *cmdBuffer) EndPass()     { c.ops = append(c.ops, "EndPass") }

func (c *cmdBuffer) BeginWork(wait bool) { c.ops = append(c.ops, "BeginWork") }
func (c *cmdBuffer) EndWork()            { c.ops = append(c.ops, "EndWork") }

func (c *cmdBuffer) BeginBlit(wait bool) { c.ops = append(c.ops, "BeginBlit") }
func (c *cmdBuffer) EndBlit()            { c.ops = append(c.ops, "EndBlit") }

func (c *cmdBuffer) SetPipeline(pl driver.Pipeline)                {}
func (c *cmdBuffer) SetViewport(vp []driver.Viewport)              {}
func (c *cmdBuffer) SetScissor(sciss []driver.Scissor)             {}
func (c *cmdBuffer) SetBlendColor(r, g, b, a float32)              {}
func (c *cmdBuffer) SetStencilRef(value uint32)                    {}
func (c *cmdBuffer) SetVertexBuf(start int, buf []driver.Buffer, off []int64) {}
func (c *cmdBuffer) SetIndexBuf(format driver.IndexFmt, buf driver.Buffer, off int64) {}
func (c *cmdBuffer) SetDescTableGraph(table driver.DescTable, start int, heapCopy []int) {}
func (c *cmdBuffer) SetDescTableComp(table driver.DescTable, start int, heapCopy []int)  {}

func (c *cmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int)                {}
func (c *cmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {}
func (c *cmdBuffer) Dispatch(grpCountX, grpCountY, grpCountZ int)                    {}

func (c *cmdBuffer) CopyBuffer(param *driver.BufferCopy) {
	if param.To == nil || param.From == nil {
		return
	}
	dst, ok := param.To.(*buffer)
	if !ok || !dst.visible {
		return
	}
	src, ok := param.From.(*buffer)
	if !ok || !src.visible {
		return
	}
	copy(dst.data[param.ToOff:param.ToOff+param.Size], src.data[param.FromOff:param.FromOff+param.Size])
}

func (c *cmdBuffer) CopyImage(param *driver.ImageCopy)     {}
func (c *cmdBuffer) CopyBufToImg(param *driver.BufImgCopy) {}
func (c *cmdBuffer) CopyImgToBuf(param *driver.BufImgCopy) {}

func (c *cmdBuffer) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	b, ok := buf.(*buffer)
	if !ok || !b.visible {
		return
	}
	for i := off; i < off+size; i++ {
		b.data[i] = value
	}
}

func (c *cmdBuffer) Barrier(b []driver.Barrier)         {}
func (c *cmdBuffer) Transition(t []driver.Transition)   {}

func (c *cmdBuffer) End() error {
	c.recording = false
	return nil
}

func (c *cmdBuffer) Reset() error {
	c.ops = c.ops[:0]
	c.recording = false
	return nil
}

// CmdBufferBlit.

func (c *cmdBuffer) ClearColorImage(img driver.Image, layer, level, layerCount, levelCount int, value [4]float32) {
	c.ops = append(c.ops, "ClearColorImage")
}

func (c *cmdBuffer) ClearDepthStencilImage(img driver.Image, layer, level, layerCount, levelCount int, depth float32, stencil uint32) {
	c.ops = append(c.ops, "ClearDepthStencilImage")
}

func (c *cmdBuffer) BlitImage(dst driver.Image, dstOff driver.Off3D, dstSize driver.Dim3D, dstLayer, dstLevel int, src driver.Image, srcOff driver.Off3D, srcSize driver.Dim3D, srcLayer, srcLevel int, filter driver.Filter) {
	c.ops = append(c.ops, "BlitImage")
}

// CmdBufferTrace.

func (c *cmdBuffer) WriteTimestamp(q driver.TimestampQuery, slot int) {
	if tq, ok := q.(*timestampQuery); ok && slot >= 0 && slot < len(tq.results) {
		tq.results[slot] = handle()
	}
}

func (c *cmdBuffer) ResetTimestampQuery(q driver.TimestampQuery, first, count int) {
	if tq, ok := q.(*timestampQuery); ok {
		for i := first; i < first+count && i < len(tq.results); i++ {
			tq.results[i] = 0
		}
	}
}

func (c *cmdBuffer) BeginStatistics(q driver.StatisticsQuery, slot int) {
	c.ops = append(c.ops, "BeginStatistics")
}

func (c *cmdBuffer) EndStatistics(q driver.StatisticsQuery, slot int) {
	if sq, ok := q.(*statisticsQuery); ok && slot >= 0 && slot < len(sq.results) {
		sq.results[slot] = driver.Statistics{}
	}
}
