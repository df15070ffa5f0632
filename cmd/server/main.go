package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/chocolatebakery/atomicgo/internal/eval"
	"github.com/chocolatebakery/atomicgo/internal/position"
	"github.com/chocolatebakery/atomicgo/internal/see"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// A small play/debug server: each websocket session owns one position and a
// JSON protocol for setting it up, listing legal moves, applying moves and
// probing the exchange evaluator.

type UpdateToWeb struct {
	FenString  string   `json:"fenString"`
	LastMove   string   `json:"lastMove"`
	LegalMoves []string `json:"legalMoves"`
	Player     string   `json:"player"`
	InCheck    bool     `json:"inCheck"`
	GameOver   bool     `json:"gameOver"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.LegalMoves)
}

type MessageFromWeb struct {
	NewFen   *string `json:"newFen"`
	FrcIndex *uint32 `json:"frcIndex"`
	Move     *string `json:"move"`
	SeeProbe *string `json:"seeProbe"`
	Rewind   *int    `json:"rewind"`
}

func (u MessageFromWeb) String() string {
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.FrcIndex != nil {
		return fmt.Sprint("MessageFromWeb FrcIndex: ", *u.FrcIndex)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.SeeProbe != nil {
		return fmt.Sprint("MessageFromWeb SeeProbe: ", *u.SeeProbe)
	}
	if u.Rewind != nil {
		return fmt.Sprint("MessageFromWeb Rewind: ", *u.Rewind)
	}
	return "MessageFromWeb unknown"
}

type session struct {
	pos  *position.Position
	nnue *eval.NnueState
}

func newSession() *session {
	s := &session{
		pos:  position.Starting(),
		nnue: eval.NewNnueState(),
	}
	s.resetNnue()
	return s
}

func (s *session) resetNnue() {
	s.nnue.Reset(s.pos.Bbs(), s.pos.King(Black), s.pos.King(White))
}

func (s *session) update(lastMove string) UpdateToWeb {
	return UpdateToWeb{
		FenString:  s.pos.ToFen(),
		LastMove:   lastMove,
		LegalMoves: MapSlice(s.pos.LegalMoves(), func(m Move) string { return m.String() }),
		Player:     s.pos.ToMove().String(),
		InCheck:    s.pos.IsCheck(),
		GameOver:   s.pos.IsVariantOver(),
	}
}

func (s *session) handleMessage(message MessageFromWeb) (UpdateToWeb, Error) {
	switch {
	case message.NewFen != nil:
		if err := s.pos.ResetFromFen(*message.NewFen); !IsNil(err) {
			return UpdateToWeb{}, err
		}
		s.resetNnue()
		return s.update(""), NilError

	case message.FrcIndex != nil:
		if err := s.pos.ResetFromFrcIndex(*message.FrcIndex); !IsNil(err) {
			return UpdateToWeb{}, err
		}
		s.resetNnue()
		return s.update(""), NilError

	case message.Move != nil:
		move, err := s.pos.MoveFromUci(*message.Move)
		if !IsNil(err) {
			return UpdateToWeb{}, err
		}
		if !s.pos.IsPseudolegal(move) || !s.pos.IsLegal(move) {
			return UpdateToWeb{}, Errorf("illegal move %v", *message.Move)
		}
		s.pos.ApplyMoveUnchecked(move, s.nnue, true)
		return s.update(move.String()), NilError

	case message.SeeProbe != nil:
		move, err := s.pos.MoveFromUci(*message.SeeProbe)
		if !IsNil(err) {
			return UpdateToWeb{}, err
		}
		update := s.update("")
		update.LastMove = fmt.Sprintf("see:%v=%v", move, see.GainAtomic(s.pos, move))
		return update, NilError

	case message.Rewind != nil:
		for i := 0; i < *message.Rewind && s.pos.Ply() > 0; i++ {
			s.pos.PopMove(s.nnue)
		}
		return s.update(""), NilError
	}

	return UpdateToWeb{}, Errorf("unhandled message %v", message)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer func() { _ = conn.Close() }()

	s := newSession()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			return
		}

		var message MessageFromWeb
		if err := json.Unmarshal(data, &message); err != nil {
			log.Println("unmarshal:", err)
			continue
		}

		update, handleErr := s.handleMessage(message)
		if !IsNil(handleErr) {
			log.Println("handle:", handleErr.First())
			continue
		}

		if err := conn.WriteJSON(update); err != nil {
			log.Println("write:", err)
			return
		}
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	port := "8002"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	router := mux.NewRouter()
	router.HandleFunc("/ws", serveWebsocket)
	router.HandleFunc("/fen", func(w http.ResponseWriter, r *http.Request) {
		s := newSession()
		fmt.Fprintln(w, s.pos.ToFen())
	})

	log.Println("serving at :" + port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
