package routes

import (
	"encoding/json"
	"net/http"

	"johan/johan/config"
	"johan/johan/controllers"
	"johan/johan/middlewares"
	"johan/johan/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func ChatRoutes(ctrl *controllers.ChatController, uploadCtrl *controllers.UploadController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			userID, _ := middlewares.UserID(r.Context())
			var req types.CreateChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			chat, err := ctrl.CreateChat(r.Context(), userID, req)
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			return chat, http.StatusCreated, nil
		}))

		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			userID, _ := middlewares.UserID(r.Context())
			chats, err := ctrl.ListChats(r.Context(), userID)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return chats, http.StatusOK, nil
		}))

		gr.Delete("/{chat_id}", func(w http.ResponseWriter, r *http.Request) {
			userID, _ := middlewares.UserID(r.Context())
			chatID, err := uuid.Parse(chi.URLParam(r, "chat_id"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := ctrl.DeleteChat(r.Context(), userID, chatID); err != nil {
				if err == controllers.ErrChatNotFound {
					http.Error(w, err.Error(), http.StatusNotFound)
				} else {
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		gr.Get("/{chat_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
			userID, _ := middlewares.UserID(r.Context())
			chatID, err := uuid.Parse(chi.URLParam(r, "chat_id"))
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			msgs, err := ctrl.GetMessages(r.Context(), userID, chatID)
			if err != nil {
				if err == controllers.ErrChatNotFound {
					return nil, http.StatusNotFound, err
				}
				return nil, http.StatusInternalServerError, err
			}
			return msgs, http.StatusOK, nil
		}))

		gr.Post("/{chat_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
			userID, _ := middlewares.UserID(r.Context())
			chatID, err := uuid.Parse(chi.URLParam(r, "chat_id"))
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			var req types.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			resp, err := ctrl.SendMessage(r.Context(), userID, chatID, req)
			if err != nil {
				if err == controllers.ErrChatNotFound {
					return nil, http.StatusNotFound, err
				}
				return nil, http.StatusInternalServerError, err
			}
			return resp, http.StatusOK, nil
		}))

		gr.Post("/{chat_id}/attachments", handleJSON(func(r *http.Request) (any, int, error) {
			userID, _ := middlewares.UserID(r.Context())
			chatID, err := uuid.Parse(chi.URLParam(r, "chat_id"))
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			defer file.Close()
			resp, err := uploadCtrl.UploadAttachment(r.Context(), userID, chatID,
				header.Filename, header.Header.Get("Content-Type"), file, header.Size)
			if err != nil {
				if err == controllers.ErrChatNotFound {
					return nil, http.StatusNotFound, err
				}
				return nil, http.StatusInternalServerError, err
			}
			return resp, http.StatusCreated, nil
		}))
	})

	// websocket streaming: first frame carries the token and the request
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input struct {
			Token       string            `json:"token"`
			ChatID      string            `json:"chat_id"`
			ChatRequest types.ChatRequest `json:"chat_request"`
		}
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		token, err := jwt.Parse(input.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid claims"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid claims")
			return
		}

		userIDf, ok := claims["user_id"].(float64)
		if !ok {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid user_id"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid user_id")
			return
		}
		userID := int(userIDf)

		chatID, err := uuid.Parse(input.ChatID)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid chat_id"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid chat_id")
			return
		}

		ch, errCh := ctrl.SendMessageStream(ctx, userID, chatID, input.ChatRequest)
		go func() {
			if err := <-errCh; err != nil {
				conn.Write(ctx, websocket.MessageText, errorFrame(err))
				conn.Close(websocket.StatusInternalError, "stream error")
			}
		}()

		for chunk := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})
	return r
}

// errorFrame encodes an error as a ws text frame; errors may carry quotes.
func errorFrame(err error) []byte {
	frame, _ := json.Marshal(map[string]string{"error": err.Error()})
	return frame
}
