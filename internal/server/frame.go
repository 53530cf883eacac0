package server

import (
	"image"
	"io"
	"net/http"
	"strconv"

	"gocv.io/x/gocv"
)

// Preprocessing defaults. The pipeline is resize, grayscale, Gaussian blur,
// CLAHE contrast equalization, then Canny edge detection.
const (
	preprocessWidth    = 320
	preprocessBlurSize = 5
	claheClipLimit     = 2.0
	claheTileSize      = 8
	cannyLowDefault    = 50
	cannyHighDefault   = 150
	maxFrameBytes      = 8 << 20
)

// handlePreprocess handles POST /api/frame/preprocess. The request body is a
// JPEG or PNG frame; the response is the edge-detected frame as JPEG.
// Optional query parameters canny_low and canny_high tune the edge detector.
func handlePreprocess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cannyLow := float32(cannyLowDefault)
	cannyHigh := float32(cannyHighDefault)
	if v := r.URL.Query().Get("canny_low"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			cannyLow = float32(parsed)
		}
	}
	if v := r.URL.Query().Get("canny_high"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			cannyHigh = float32(parsed)
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxFrameBytes))
	if err != nil || len(body) == 0 {
		http.Error(w, "Missing frame body", http.StatusBadRequest)
		return
	}

	src, err := gocv.IMDecode(body, gocv.IMReadColor)
	if err != nil || src.Empty() {
		http.Error(w, "Invalid image", http.StatusBadRequest)
		return
	}
	defer src.Close()

	// Resize preserving aspect ratio.
	height := src.Rows() * preprocessWidth / src.Cols()
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(src, &resized, image.Pt(preprocessWidth, height), 0, 0, gocv.InterpolationLinear)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(resized, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(preprocessBlurSize, preprocessBlurSize), 0, 0, gocv.BorderDefault)

	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()
	equalized := gocv.NewMat()
	defer equalized.Close()
	clahe.Apply(blurred, &equalized)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(equalized, &edges, cannyLow, cannyHigh)

	buf, err := gocv.IMEncode(".jpg", edges)
	if err != nil {
		http.Error(w, "Failed to encode frame", http.StatusInternalServerError)
		return
	}
	defer buf.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(buf.GetBytes())
}
