package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int    `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate is sent when a pass finishes
type PassUpdate struct {
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	IsLast         bool    `json:"isLast"`
	ElapsedMs      int64   `json:"elapsedMs"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	ObjectCount    int     `json:"objectCount"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the whole frame
}

// SSEEvent is one Server-Sent Event
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.ProgressiveRaytracer
	Passes    int
}

// sseWriter writes events to a streaming response. Only the handler goroutine uses it.
type sseWriter struct {
	w http.ResponseWriter
}

func (sw sseWriter) send(event SSEEvent) error {
	if _, err := fmt.Fprintf(sw.w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := sw.w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

func (sw sseWriter) sendJSON(eventType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return sw.send(SSEEvent{Type: eventType, Data: string(data)})
}

// handleRender streams a progressive render via SSE. Events are written from
// this goroutine only, so the response is never touched after the handler returns.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()
	out := sseWriter{w: w}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		out.send(SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, s.logger, consoleChan)

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		out.send(SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	startTime := time.Now()
	passChan, tileChan, errChan := pipeline.Raytracer.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})

	if err := s.handleRenderingEvents(ctx, out, consoleChan, passChan, tileChan, errChan, pipeline, startTime); err != nil {
		out.send(SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
		return
	}
	if ctx.Err() != nil {
		return
	}

	s.flushConsole(out, consoleChan)
	out.send(SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger log.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	name := req.Integrator
	if name == "" {
		name = sceneObj.Integrator
	}
	if name == "" {
		name = "path"
	}
	integ, err := integrator.New(name, sceneObj.SamplingConfig.MaxDepth)
	if err != nil {
		return nil, err
	}

	maxSamples := req.MaxSamples
	if maxSamples == 0 {
		maxSamples = sceneObj.SamplingConfig.SamplesPerPixel
	}

	config := renderer.ProgressiveConfig{
		TileSize:           DefaultTileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: maxSamples,
		MaxPasses:          req.MaxPasses,
		NumWorkers:         0, // Auto-detect
		Seed:               req.Seed,
	}

	logger.Noticef("Rendering %s at %dx%d (%d objects, %s integrator)",
		sceneObj.Name, sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height, sceneObj.World.Len(), name)

	raytracer := renderer.NewProgressiveRaytracer(sceneObj,
		sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height, integ, config, logger)
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: raytracer,
		Passes:    raytracer.Config().MaxPasses,
	}, nil
}

// handleRenderingEvents forwards renderer output until every channel is drained.
// It returns the render error, if any.
func (s *Server) handleRenderingEvents(ctx context.Context, out sseWriter, consoleChan <-chan ConsoleMessage,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	pipeline *RenderingPipeline, startTime time.Time) error {

	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(out, passResult, pipeline, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(out, tileResult)

		case msg := <-consoleChan:
			out.sendJSON("console", msg)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				return err
			}

		case <-ctx.Done():
			// Client disconnected; the renderer stops on the same context
			return nil
		}
	}
	return nil
}

// flushConsole sends console messages still buffered after rendering
func (s *Server) flushConsole(out sseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			out.sendJSON("console", msg)
		default:
			return
		}
	}
}

// handlePassComplete sends the pass statistics and a snapshot of the frame
func (s *Server) handlePassComplete(out sseWriter, passResult renderer.PassResult, pipeline *RenderingPipeline, startTime time.Time) {
	imageData, err := imageToBase64PNG(passResult.Image)
	if err != nil {
		s.logger.Errorf("Encoding pass %d image: %v", passResult.PassNumber, err)
		return
	}

	stats := passResult.Stats
	out.sendJSON("passComplete", PassUpdate{
		PassNumber:     passResult.PassNumber,
		TotalPasses:    pipeline.Passes,
		IsLast:         passResult.IsLast,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		MaxSamples:     stats.MaxSamples,
		MinSamples:     stats.MinSamples,
		MaxSamplesUsed: stats.MaxSamplesUsed,
		ObjectCount:    pipeline.Scene.World.Len(),
		ImageData:      imageData,
	})
}

// handleTileUpdate sends one finished tile
func (s *Server) handleTileUpdate(out sseWriter, tileResult renderer.TileCompletionResult) {
	tileData, err := imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		s.logger.Errorf("Encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	out.sendJSON("tile", TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "maxPasses", 7, 1, MaxPasses); err != nil {
		return nil, err
	}

	req.Integrator = query.Get("integrator")
	if req.Integrator != "" {
		if _, err := integrator.New(req.Integrator, 0); err != nil {
			return nil, err
		}
	}

	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		s.logger.Warningf("Large image with high samples may render slowly")
	}

	return req, nil
}
