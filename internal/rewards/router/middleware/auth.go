package middleware

import (
	"github.com/SakuraBurst/rewards/internal/rewards/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenKey   = "user"
	SessionKey = "session"
)

func Protected(jwtSecret []byte) func(*fiber.Ctx) error {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: jwtSecret},
		ContextKey:   TokenKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, _ error) error {
	c.Status(fiber.StatusUnauthorized)
	return c.JSON(fiber.Map{"status": "error", "message": "Необходима авторизация"})
}

type sessionLoader interface {
	FromToken(token *jwt.Token) (*session.Session, error)
}

// Session кладет сессию из токена в Locals, вызывается после Protected
func Session(store sessionLoader) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(TokenKey).(*jwt.Token)
		sess, err := store.FromToken(token)
		if err != nil {
			c.Status(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{"status": "error", "message": "Сессия истекла, откройте приложение заново"})
		}
		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

func SessionFrom(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(SessionKey).(*session.Session)
	return sess
}
