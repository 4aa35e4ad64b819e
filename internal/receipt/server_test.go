package receipt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Server", func() {
	var (
		db          *mockDB
		engine      *mockEngine
		images      *mockImageStore
		service     *Service
		server      *Server
		auth        BasicAuth
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		server = NewServerWithMux(service, auth, http.NewServeMux())
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	BeforeEach(func() {
		db = newMockDB()
		engine = &mockEngine{transcript: testTranscript}
		images = newMockImageStore()
		service = NewServiceWithDeps(db, engine, images,
			&fixedIDGenerator{id: "receipt-1"},
			&fixedTimeSource{now: testNow},
		)
		auth = BasicAuth{}
		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	uploadReceipt := func(filename string) *http.Response {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write([]byte("fake-image-bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		req, err := http.NewRequest("POST", ghttpServer.URL()+"/api/receipts", body)
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	Describe("POST /api/receipts", func() {
		It("runs the scan pipeline and returns the persisted receipt", func() {
			resp := uploadReceipt("receipt.jpg")
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var got Receipt
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got.ID).To(Equal("receipt-1"))
			Expect(got.StoreName).To(Equal("WHOLE FOODS MARKET"))
			Expect(got.Total).To(Equal(732))
			Expect(got.Category).To(Equal("Other"))
			Expect(db.receipts).To(HaveKey("receipt-1"))
		})

		When("no file is attached", func() {
			It("returns a JSON error", func() {
				req, err := http.NewRequest("POST", ghttpServer.URL()+"/api/receipts", strings.NewReader(""))
				Expect(err).NotTo(HaveOccurred())
				req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})

		When("transcription fails", func() {
			BeforeEach(func() {
				engine.err = io.ErrUnexpectedEOF
			})

			It("returns a JSON error", func() {
				resp := uploadReceipt("receipt.jpg")
				defer resp.Body.Close()

				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

				var body map[string]string
				Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
				Expect(body).To(HaveKey("error"))
			})
		})
	})

	Describe("GET /api/receipts", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", StoreName: "METRO"}
			db.receipts["r2"] = &Receipt{ID: "r2", StoreName: "FARM BOY"}
		})

		It("returns all receipts", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/receipts")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var got []Receipt
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got).To(HaveLen(2))
		})
	})

	Describe("GET /api/receipts/{id}", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", StoreName: "METRO"}
		})

		It("returns the receipt", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/receipts/r1")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var got Receipt
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got.StoreName).To(Equal("METRO"))
		})

		When("the receipt does not exist", func() {
			It("returns 404", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/receipts/missing")
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			})
		})
	})

	Describe("PUT /api/receipts/{id}", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", StoreName: "METRO", Category: "Other", Total: 732}
		})

		It("applies a manual correction", func() {
			body := bytes.NewReader([]byte(`{"category": "Groceries", "total": 1050}`))
			req, err := http.NewRequest("PUT", ghttpServer.URL()+"/api/receipts/r1", body)
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var got Receipt
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got.Category).To(Equal("Groceries"))
			Expect(got.Total).To(Equal(1050))
		})

		When("the category is unknown", func() {
			It("returns a JSON error", func() {
				body := bytes.NewReader([]byte(`{"category": "Snacks"}`))
				req, err := http.NewRequest("PUT", ghttpServer.URL()+"/api/receipts/r1", body)
				Expect(err).NotTo(HaveOccurred())

				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("DELETE /api/receipts/{id}", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Filename: "r1_receipt.jpg"}
			images.files["r1_receipt.jpg"] = []byte("image")
		})

		It("deletes the receipt", func() {
			req, err := http.NewRequest("DELETE", ghttpServer.URL()+"/api/receipts/r1", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(db.receipts).To(BeEmpty())
		})
	})

	Describe("GET /api/receipts/{id}/file", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Filename: "r1_receipt.jpg", ContentType: "image/jpeg"}
			images.files["r1_receipt.jpg"] = []byte("image-bytes")
		})

		It("serves the stored image", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/receipts/r1/file")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("image/jpeg"))
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(Equal([]byte("image-bytes")))
		})
	})

	Describe("GET /api/insights/daily", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Date: testNow, Total: 1000, Category: "Groceries"}
			db.receipts["r2"] = &Receipt{ID: "r2", Date: testNow.AddDate(0, 0, -3), Total: 500, Category: "Dining"}
		})

		It("returns a gap-filled series with summary numbers", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/insights/daily?days=30")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var got struct {
				Points []struct {
					BucketStart time.Time `json:"bucket_start"`
					Amount      int       `json:"amount"`
				} `json:"points"`
				Total   int     `json:"total"`
				Average float64 `json:"average"`
			}
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got.Points).To(HaveLen(30))
			Expect(got.Total).To(Equal(1500))
			Expect(got.Average).To(Equal(50.0))
		})

		When("the days parameter is malformed", func() {
			It("falls back to the default window", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/insights/daily?days=banana")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()

				var got struct {
					Points []json.RawMessage `json:"points"`
				}
				Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
				Expect(got.Points).To(HaveLen(30))
			})
		})
	})

	Describe("GET /api/insights/weekly", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Date: testNow, Total: 1000}
		})

		It("returns one point per week", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/insights/weekly?weeks=4")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			var got struct {
				Points []json.RawMessage `json:"points"`
				Total  int               `json:"total"`
			}
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got.Points).To(HaveLen(4))
			Expect(got.Total).To(Equal(1000))
		})
	})

	Describe("GET /api/insights/categories", func() {
		BeforeEach(func() {
			db.receipts["r1"] = &Receipt{ID: "r1", Date: testNow, Total: 1000, Category: "Groceries"}
			db.receipts["r2"] = &Receipt{ID: "r2", Date: testNow, Total: 500, Category: "Dining"}
		})

		It("returns the per-category breakdown", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/insights/categories")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			var got []struct {
				Category string `json:"category"`
				Amount   int    `json:"amount"`
			}
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got).To(HaveLen(2))
			Expect(got[0].Category).To(Equal("Groceries"))
		})
	})

	Describe("GET /api/categories", func() {
		It("lists the assignable labels", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/categories")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			var got []string
			Expect(json.NewDecoder(resp.Body).Decode(&got)).To(Succeed())
			Expect(got).To(ContainElement("Groceries"))
			Expect(got).To(ContainElement("Other"))
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "user", Password: "secret"}
			setupServer()
		})

		It("rejects requests without credentials", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/receipts")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("accepts requests with valid credentials", func() {
			ghttpServer.AppendHandlers(server.ServeHTTP)

			req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/receipts", nil)
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("user:secret")))

			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
		})
	})
})
