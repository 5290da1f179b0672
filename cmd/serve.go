package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tayjaybabee/mididiff/diff"
	"github.com/tayjaybabee/mididiff/midi"
	"github.com/tayjaybabee/mididiff/model"
	"github.com/tayjaybabee/mididiff/note"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the differ over HTTP",
	Long: `Serves the differ over HTTP. POST two MIDI files (multipart parts "a"
and "b") to /diff for the diff MIDI, or to /diff/summary for counts only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(servePort)
	},
}

func readPart(r *http.Request, name string) (*smf.SMF, error) {
	f, _, err := r.FormFile(name)
	if err != nil {
		return nil, fmt.Errorf("missing or unreadable file part %q: %w", name, err)
	}
	defer f.Close()
	return midi.Decode(f)
}

type diffResult struct {
	onlyInA []model.NoteEvent
	onlyInB []model.NoteEvent
	smfA    *smf.SMF
}

func diffRequest(r *http.Request) (*diffResult, int, error) {
	smfA, err := readPart(r, "a")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	smfB, err := readPart(r, "b")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	notesA := note.Extract(smfA)
	notesB := note.Extract(smfB)
	return &diffResult{
		onlyInA: diff.OnlyIn(notesA, notesB),
		onlyInB: diff.OnlyIn(notesB, notesA),
		smfA:    smfA,
	}, http.StatusOK, nil
}

// HandleDiff implements POST /diff. Exported so the e2e tests can drive
// it through httptest without a listener.
func HandleDiff(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()

	res, code, err := diffRequest(r)
	if err != nil {
		writeError(w, code, err)
		return
	}

	out, err := note.ToSMF(append(res.onlyInA, res.onlyInB...), midi.TicksPerBeat(res.smfA))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	log.Printf("[%v] diff: %v notes only in a, %v only in b", reqID, len(res.onlyInA), len(res.onlyInB))

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("X-Notes-Only-In-A", strconv.Itoa(len(res.onlyInA)))
	w.Header().Set("X-Notes-Only-In-B", strconv.Itoa(len(res.onlyInB)))
	if _, err := out.WriteTo(w); err != nil {
		log.Printf("[%v] could not write response: %v", reqID, err)
	}
}

// HandleDiffSummary implements POST /diff/summary: same inputs as /diff,
// JSON counts instead of a file.
func HandleDiffSummary(w http.ResponseWriter, r *http.Request) {
	res, code, err := diffRequest(r)
	if err != nil {
		writeError(w, code, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.DiffSummary{
		OnlyInA: len(res.onlyInA),
		OnlyInB: len(res.onlyInB),
	})
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func serve(port int) error {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/diff", HandleDiff).Methods("POST")
	router.HandleFunc("/diff/summary", HandleDiffSummary).Methods("POST")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	handler := cors.Default().Handler(router)
	log.Printf("Listening on :%v", port)
	return http.ListenAndServe(fmt.Sprintf(":%v", port), handler)
}
