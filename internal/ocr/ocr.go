// Package ocr is the boundary to the optical character recognition
// engines. An engine takes image bytes in and returns a plain
// multi-line transcript out, with no accuracy or layout guarantee;
// everything smarter lives in the parsing package.
package ocr

import "strings"

// Engine describes a text recognition backend.
type Engine interface {
	// RecognizeText transcribes a receipt image or PDF into plain text.
	RecognizeText(imageData []byte, contentType string) (string, error)
	// Close releases engine resources.
	Close() error
}

// transcriptPrompt is shared by the vision-model engines. The models
// act as a plain OCR pass; field extraction stays in this codebase.
const transcriptPrompt = `You are transcribing a photographed paper receipt.

Read every piece of text in the image, top to bottom, and return it as plain text with one receipt line per output line. Keep amounts on the same line as their labels, exactly as printed.

Important:
- Return ONLY the transcript, no commentary before or after
- Do not use markdown code blocks
- Do not summarize, translate, or reformat numbers
- If a fragment is unreadable, skip it rather than guessing`

// cleanTranscript strips the markdown fences vision models sometimes
// wrap around their output despite instructions.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
