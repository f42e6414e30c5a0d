package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/airsenselabs/assistant/internal/adapters/answers"
	"github.com/airsenselabs/assistant/internal/adapters/audio"
	"github.com/airsenselabs/assistant/internal/adapters/speech"
	firestorestore "github.com/airsenselabs/assistant/internal/adapters/storage/firestore"
	memstore "github.com/airsenselabs/assistant/internal/adapters/storage/memory"
	"github.com/airsenselabs/assistant/internal/adapters/transcription"
	"github.com/airsenselabs/assistant/internal/app/dispatch"
	"github.com/airsenselabs/assistant/internal/app/recording"
	"github.com/airsenselabs/assistant/internal/app/session"
	"github.com/airsenselabs/assistant/internal/config"
	"github.com/airsenselabs/assistant/internal/domain"
	"github.com/airsenselabs/assistant/internal/observability"
)

func main() {
	// One session per process; every log line carries its id.
	ctx := observability.WithSessionID(context.Background(), uuid.NewString())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	// Answer backend: assist endpoint, direct Vertex, or mock.
	var answerClient domain.AnswerClient
	switch cfg.AnswerBackend {
	case "vertex":
		log.Println("[ANSWERS] Using Vertex backend")
		answerClient, err = answers.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Vertex answer client: %v", err)
		}
	case "mock":
		log.Println("[ANSWERS] Using MOCK backend")
		answerClient = answers.NewMock()
	default:
		log.Printf("[ANSWERS] Using assist endpoint %s", cfg.AnswerURL)
		answerClient = answers.NewHTTPClient(cfg.AnswerURL, cfg.AnswerTimeout)
	}

	// Storage: Firestore or Memory.
	var store domain.MessageStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		defer fsStore.Close()
		store = fsStore
	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewStore()
	}

	var synth domain.Synthesizer = speech.Null{}
	if cfg.SpeechCommand != "" {
		synth = speech.NewCommandSynthesizer(cfg.SpeechCommand)
	}
	engine := speech.NewEngine(synth)
	defer engine.Stop()

	sink := newTerminalSink()

	orch := session.NewOrchestrator(
		domain.RoomKey(domain.ParticipantID(cfg.UserID), domain.ParticipantID(cfg.AssistantID)),
		recording.NewController(audio.NewMicrophone(cfg.SampleRate, cfg.Channels), sink),
		transcription.NewHTTPClient(cfg.TranscriptionURL, cfg.TranscriptionTimeout),
		dispatch.NewDispatcher(answerClient),
		store,
		engine,
		sink,
	)

	if err := orch.Start(ctx); err != nil {
		log.Fatalf("error starting session: %v", err)
	}
	defer orch.Close()

	if err := runLoop(ctx, orch, sink); err != nil {
		log.Fatal(err)
	}
}

func runLoop(ctx context.Context, orch *session.Orchestrator, sink *terminalSink) error {
	rl, err := readline.New("you> ")
	if err != nil {
		return fmt.Errorf("initializing input: %w", err)
	}
	defer rl.Close()

	fmt.Println("Ask AirSense AI. /voice toggles the microphone, /quit exits.")

	for {
		line, err := rl.Readline()
		if err != nil {
			// ^C or ^D ends the session.
			return nil
		}

		switch strings.TrimSpace(line) {
		case "/quit":
			return nil

		case "/voice":
			if sink.Listening() {
				if err := orch.StopVoice(ctx); err != nil {
					continue
				}
				fmt.Printf("heard: %s  (press enter to send)\n", orch.PendingInput())
			} else {
				_ = orch.StartVoice(ctx)
			}

		case "":
			if orch.PendingInput() == "" {
				continue
			}
			if _, err := orch.Submit(ctx); err != nil {
				fmt.Printf("! %v\n", err)
			}

		default:
			orch.TypeInput(line)
			if _, err := orch.Submit(ctx); err != nil {
				fmt.Printf("! %v\n", err)
			}
		}
	}
}

// terminalSink prints session events; it is the stand-in for the chat
// screen of a richer front-end.
type terminalSink struct {
	mu        sync.Mutex
	listening bool
	printed   int
}

func newTerminalSink() *terminalSink {
	return &terminalSink{}
}

func (s *terminalSink) ListeningChanged(active bool) {
	s.mu.Lock()
	s.listening = active
	s.mu.Unlock()

	if active {
		fmt.Println("[mic] listening...")
	} else {
		fmt.Println("[mic] off")
	}
}

func (s *terminalSink) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// MessagesChanged prints messages not shown yet. The rendered view only
// grows, so the tail past the high-water mark is what is new.
func (s *terminalSink) MessagesChanged(msgs []*domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(msgs) < s.printed {
		s.printed = len(msgs)
		return
	}
	for _, m := range msgs[s.printed:] {
		who := "you"
		if m.Sender == domain.SenderAssistant {
			who = "airsense"
		}
		fmt.Printf("%s: %s\n", who, m.Text)
	}
	s.printed = len(msgs)
}

func (s *terminalSink) Alert(title, detail string) {
	fmt.Printf("[%s] %s\n", title, detail)
}
