package ocr

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Ollama", func() {
	var (
		server *ghttp.Server
		engine *Ollama
	)

	testImage := func() []byte {
		var buf bytes.Buffer
		Expect(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)))).To(Succeed())
		return buf.Bytes()
	}

	BeforeEach(func() {
		server = ghttp.NewServer()
		var err error
		engine, err = NewOllama(server.URL(), "llava")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	It("sends the image to the chat API and returns the transcript", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest("POST", "/api/chat"),
			ghttp.VerifyContentType("application/json"),
			func(w http.ResponseWriter, r *http.Request) {
				var req ollamaChatRequest
				Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
				Expect(req.Model).To(Equal("llava"))
				Expect(req.Stream).To(BeFalse())
				Expect(req.Images).To(HaveLen(1))
			},
			ghttp.RespondWithJSONEncoded(http.StatusOK, ollamaChatResponse{
				Message: ollamaMessage{Role: "assistant", Content: "```\nWHOLE FOODS\nTOTAL $7.32\n```"},
				Done:    true,
			}),
		))

		text, err := engine.RecognizeText(testImage(), "image/png")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("WHOLE FOODS\nTOTAL $7.32"))
	})

	It("surfaces API errors with the response body", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, "model not loaded"))

		_, err := engine.RecognizeText(testImage(), "image/png")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("status 500"))
		Expect(err.Error()).To(ContainSubstring("model not loaded"))
	})

	It("rejects undecodable uploads before calling the API", func() {
		_, err := engine.RecognizeText([]byte("not an image"), "image/jpeg")
		Expect(err).To(HaveOccurred())
		Expect(server.ReceivedRequests()).To(BeEmpty())
	})

	It("defaults the base URL and model when unset", func() {
		e, err := NewOllama("", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(e.baseURL).To(Equal("http://localhost:11434"))
		Expect(e.model).To(Equal("llava"))
	})
})
