package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/internal/repository"
	"odigyan_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleClaims 身份提供方返回的用户信息
type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// TokenVerifier 校验第三方身份提供方签发的 ID token
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// googleTokenVerifier 通过 Google tokeninfo 端点校验
type googleTokenVerifier struct {
	endpoint string
	client   *http.Client
}

func NewGoogleTokenVerifier(endpoint string) TokenVerifier {
	if endpoint == "" {
		endpoint = defaultTokenInfoURL
	}
	return &googleTokenVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *googleTokenVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	reqURL := fmt.Sprintf("%s?id_token=%s", v.endpoint, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.ErrInvalidIDToken
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, err
	}
	if claims.Email == "" || claims.EmailVerified != "true" {
		return nil, util.ErrInvalidIDToken
	}
	return &claims, nil
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Verifier TokenVerifier
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, verifier TokenVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Verifier: verifier,
		Cfg:      cfg,
	}
}

// SignInWithGoogle 校验 ID token，按需建档，签发本地 JWT。
// 邮箱匹配配置的管理员邮箱时授予管理员角色。
func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken string) (string, *model.User, error) {
	claims, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		return "", nil, err
	}

	if !s.domainAllowed(claims.Email) {
		return "", nil, util.ErrDomainNotAllowed
	}

	user, err := s.UserRepo.FindByGoogleUID(claims.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 同邮箱的本地账号绑定 Google UID
		user, err = s.UserRepo.FindByEmail(claims.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				Name:      claims.Name,
				Email:     claims.Email,
				GoogleUID: claims.Sub,
				PhotoURL:  claims.Picture,
				Role:      s.roleFor(claims.Email),
			}
			if err := s.UserRepo.Create(user); err != nil {
				return "", nil, err
			}
		} else if err != nil {
			return "", nil, err
		} else {
			user.GoogleUID = claims.Sub
			user.PhotoURL = claims.Picture
			if err := s.UserRepo.Update(user); err != nil {
				return "", nil, err
			}
		}
	} else if err != nil {
		return "", nil, err
	}

	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login 管理员本地账号登录，普通学生走 Google 登录
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if user.Password == "" {
		return "", errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)
	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// EnsureAdminAccount 启动时创建配置指定的管理员兜底账号
func (s *AuthService) EnsureAdminAccount() error {
	if s.Cfg.Admin.Email == "" || s.Cfg.Admin.Password == "" {
		return nil
	}

	_, err := s.UserRepo.FindByEmail(s.Cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.UserRepo.Create(&model.User{
		Name:     "Administrator",
		Email:    s.Cfg.Admin.Email,
		Password: string(hashed),
		Role:     model.Admin,
	})
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}

func (s *AuthService) roleFor(email string) model.UserRole {
	if strings.EqualFold(email, s.Cfg.Admin.Email) {
		return model.Admin
	}
	return model.Student
}

func (s *AuthService) domainAllowed(email string) bool {
	if len(s.Cfg.Auth.AllowedDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range s.Cfg.Auth.AllowedDomains {
		if domain == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
