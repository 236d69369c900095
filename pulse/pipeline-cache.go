package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hashicorp/golang-lru/v2"
)

type CachedPipeline struct {
	Pipeline   *wgpu.RenderPipeline
	bindGroups *lru.Cache[uint32, *wgpu.BindGroupLayout]
}

func (pc *CachedPipeline) GetBindGroupLayout(idx uint32) *wgpu.BindGroupLayout {
	bindGroup, ok := pc.bindGroups.Get(idx)
	if ok {
		return bindGroup
	}

	bindGroup = pc.Pipeline.GetBindGroupLayout(idx)
	pc.bindGroups.Add(idx, bindGroup)

	return bindGroup
}

type PipelineConfig interface {
	comparable

	// Specialize creates a specialized pipeline for the
	// current PipelineConfig
	Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error)
}

// PipelineCache holds the render pipelines built for a device, keyed by the
// configuration they were specialized for. A window that is moved to a
// monitor with a different surface format gets a new pipeline while the
// old one stays around for a while.
type PipelineCache[C PipelineConfig] struct {
	device *wgpu.Device
	cache  *lru.Cache[C, CachedPipeline]
}

func NewPipelineCache[C PipelineConfig](dev *Device, size int) *PipelineCache[C] {
	if size <= 0 {
		size = 16
	}

	cache, _ := lru.NewWithEvict[C, CachedPipeline](size, releasePipelineOnEviction[C])

	return &PipelineCache[C]{
		device: dev.Device,
		cache:  cache,
	}
}

func (p *PipelineCache[C]) Get(conf C) (CachedPipeline, error) {
	cached, ok := p.cache.Get(conf)
	if ok {
		return cached, nil
	}

	slog.Debug("Specialize pipeline", slog.Any("config", conf))

	var pipeline *wgpu.RenderPipeline

	// shader compilation errors are reported by CreateShaderModule and
	// CreateRenderPipeline
	err := CaptureValidation(func() error {
		var err error
		pipeline, err = conf.Specialize(p.device)
		return err
	})

	if err != nil {
		if pipeline != nil {
			pipeline.Release()
		}

		return CachedPipeline{}, fmt.Errorf("build pipeline: %w", err)
	}

	bindGroupsCache, _ := lru.NewWithEvict[uint32, *wgpu.BindGroupLayout](16, releaseBindGroupLayoutOnEviction)

	pc := CachedPipeline{Pipeline: pipeline, bindGroups: bindGroupsCache}
	p.cache.Add(conf, pc)

	return pc, nil
}

func (p *PipelineCache[C]) Len() int {
	return p.cache.Len()
}

// Release releases all cached pipelines. The cache stays usable.
func (p *PipelineCache[C]) Release() {
	p.cache.Purge()
}

func releasePipelineOnEviction[C any](_config C, pipe CachedPipeline) {
	pipe.bindGroups.Purge()

	if pipe.Pipeline != nil {
		pipe.Pipeline.Release()
	}
}

func releaseBindGroupLayoutOnEviction(_ uint32, ev *wgpu.BindGroupLayout) {
	ev.Release()
}
