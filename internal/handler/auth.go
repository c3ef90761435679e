package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	ldap "github.com/go-ldap/ldap/v3"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/internal/payload"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/internal/util"
	"github.com/redink-lab/redink/pkg/config"
	"github.com/redink-lab/redink/pkg/constants"
)

// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
// The access token never touches a cookie, it lives in the Authorization header.
const RefreshCookieName = "redink_refresh"

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewAuthMgr)
}

type AuthMgr struct {
	name     string
	db       *gorm.DB
	tokenMgr *util.TokenManager
}

func NewAuthMgr(conf *RegisterConfig) Manager {
	return &AuthMgr{
		name:     "auth",
		db:       conf.DB,
		tokenMgr: util.GetTokenMgr(),
	}
}

func (mgr *AuthMgr) GetName() string { return mgr.name }

func (mgr *AuthMgr) RegisterPublic(g *gin.RouterGroup) {
	auth := g.Group(constants.APIPrefix + "/auth")
	auth.POST("/signup", mgr.Signup)
	auth.POST("/login", mgr.Login)
	auth.POST("/refresh", mgr.RefreshToken)
	auth.POST("/logout", mgr.Logout)
}

func (mgr *AuthMgr) RegisterProtected(_ *gin.RouterGroup) {}

func (mgr *AuthMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type (
	SignupReq struct {
		Username string `json:"username" binding:"required,min=2,max=32"` // 用户名
		Nickname string `json:"nickname"`                                 // 昵称，默认与用户名相同
		Email    string `json:"email" binding:"omitempty,email"`          // 邮箱
		Password string `json:"password" binding:"required,min=8"`        // 密码
	}

	LoginReq struct {
		Username   string `json:"username" binding:"required"` // 用户名
		Password   string `json:"password" binding:"required"` // 密码
		AuthMethod string `json:"auth"`                        // 认证方式 [normal, ldap]，默认 normal
	}
)

const (
	AuthMethodNormal = "normal"
	AuthMethodLDAP   = "ldap"
)

// Signup godoc
// @Summary 用户注册
// @Description 开放注册时创建新用户，全局角色固定为 USER
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body SignupReq true "注册信息"
// @Success 201 {object} resputil.Envelope "注册成功，返回用户信息"
// @Failure 400 {object} resputil.Envelope "请求参数错误"
// @Failure 409 {object} resputil.Envelope "用户名已存在"
// @Router /v1/auth/signup [post]
func (mgr *AuthMgr) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if !config.GetConfig().Signup.Open {
		resputil.HTTPError(c, http.StatusForbidden, "signup is closed")
		return
	}

	var count int64
	if err := mgr.db.WithContext(c).Model(&model.User{}).
		Where("name = ?", req.Username).Count(&count).Error; err != nil {
		resputil.Error(c, err)
		return
	}
	if count > 0 {
		resputil.HTTPError(c, http.StatusConflict, "username already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	password := string(hashed)
	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	user := model.User{
		Name:     req.Username,
		Password: &password,
		Role:     model.RoleUser,
		Status:   model.StatusActive,
		Attribute: datatypes.NewJSONType(model.UserAttribute{
			Nickname: nickname,
			Email:    req.Email,
		}),
	}
	if err := mgr.db.WithContext(c).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resputil.HTTPError(c, http.StatusConflict, "username already taken")
			return
		}
		resputil.Error(c, err)
		return
	}
	resputil.Created(c, resputil.Envelope{"user": payload.NewUserInfo(&user)})
}

// Login godoc
// @Summary 用户登录
// @Description 校验用户身份，签发访问令牌并通过 HTTP-only Cookie 下发刷新令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param data body LoginReq true "登录信息"
// @Success 200 {object} resputil.Envelope "登录成功，返回 JWT Token 和用户信息"
// @Failure 400 {object} resputil.Envelope "请求参数错误"
// @Failure 401 {object} resputil.Envelope "用户名或密码错误"
// @Router /v1/auth/login [post]
func (mgr *AuthMgr) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	if req.AuthMethod == "" {
		req.AuthMethod = AuthMethodNormal
	}

	// Check if request auth method is valid
	switch req.AuthMethod {
	case AuthMethodLDAP:
		if !config.GetConfig().LDAP.Enable {
			resputil.BadRequestError(c, "ldap auth is not enabled")
			return
		}
		if err := mgr.ldapAuth(req.Username, req.Password); err != nil {
			klog.Infof("ldap auth failed for %s: %v", req.Username, err)
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
	case AuthMethodNormal:
		if err := mgr.normalAuth(c, req.Username, req.Password); err != nil {
			klog.Infof("password auth failed for %s: %v", req.Username, err)
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
	default:
		resputil.BadRequestError(c, "invalid auth method")
		return
	}

	// Check if the user exists
	var user model.User
	err := mgr.db.WithContext(c).Where("name = ?", req.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) && req.AuthMethod == AuthMethodLDAP {
			// User exists in LDAP but not in the database, create a new user
			created, createErr := mgr.createLDAPUser(c, req.Username)
			if createErr != nil {
				resputil.Error(c, createErr)
				return
			}
			user = *created
		} else {
			resputil.Error(c, err)
			return
		}
	}
	if user.Status != model.StatusActive {
		resputil.HTTPError(c, http.StatusUnauthorized, "User is not active")
		return
	}

	mgr.issueTokens(c, &user)
}

// issueTokens generates a fresh token pair, sets the refresh cookie and
// writes the login response.
func (mgr *AuthMgr) issueTokens(c *gin.Context, user *model.User) {
	jwtMessage := util.JWTMessage{
		UserID:       user.ID,
		Username:     user.Name,
		RolePlatform: user.Role,
	}
	accessToken, refreshToken, err := mgr.tokenMgr.CreateTokens(&jwtMessage)
	if err != nil {
		resputil.Error(c, err)
		return
	}
	mgr.setRefreshCookie(c, refreshToken)
	resputil.Success(c, resputil.Envelope{
		"accessToken": accessToken,
		"user":        payload.NewUserInfo(user),
	})
}

func (mgr *AuthMgr) setRefreshCookie(c *gin.Context, token string) {
	conf := config.GetConfig()
	maxAge := int(mgr.tokenMgr.RefreshTokenTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, maxAge, "/v1/auth", conf.Auth.CookieDomain, conf.Auth.CookieSecure, true)
}

func (mgr *AuthMgr) clearRefreshCookie(c *gin.Context) {
	conf := config.GetConfig()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, "/v1/auth", conf.Auth.CookieDomain, conf.Auth.CookieSecure, true)
}

// createLDAPUser is called when an LDAP user logs in for the first time.
func (mgr *AuthMgr) createLDAPUser(c *gin.Context, name string) (*model.User, error) {
	user := model.User{
		Name:     name,
		Password: nil,
		Role:     model.RoleUser,
		Status:   model.StatusActive,
		Attribute: datatypes.NewJSONType(model.UserAttribute{
			Nickname: name,
		}),
	}
	if err := mgr.db.WithContext(c).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (mgr *AuthMgr) normalAuth(c *gin.Context, username, password string) error {
	var user model.User
	if err := mgr.db.WithContext(c).Where("name = ?", username).First(&user).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	p := user.Password
	if p == nil {
		return fmt.Errorf("user does not have a password")
	}

	if bcrypt.CompareHashAndPassword([]byte(*p), []byte(password)) != nil {
		return fmt.Errorf("wrong username or password")
	}
	return nil
}

func (mgr *AuthMgr) ldapAuth(username, password string) error {
	authConfig := config.GetConfig()
	l, err := ldap.DialURL(authConfig.LDAP.Address)
	if err != nil {
		return err
	}
	defer l.Close()
	err = l.Bind(authConfig.LDAP.UserName, authConfig.LDAP.Password)
	if err != nil {
		return err
	}

	// 管理员搜索用户
	searchRequest := ldap.NewSearchRequest(
		authConfig.LDAP.SearchDN, // 搜索基准 DN
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", username), // 过滤条件
		[]string{"dn"}, // 返回的属性列表
		nil,
	)

	searchResult, err := l.Search(searchRequest)
	if err != nil {
		return err
	}

	if len(searchResult.Entries) != 1 {
		return fmt.Errorf("user not found or too many entries returned")
	}

	// 用户存在，验证用户密码
	userDN := searchResult.Entries[0].DN
	return l.Bind(userDN, password)
}

// RefreshToken godoc
// @Summary 刷新令牌
// @Description 校验 Cookie 中的刷新令牌，轮换出新的令牌对
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} resputil.Envelope "刷新成功，返回新的访问令牌"
// @Failure 401 {object} resputil.Envelope "刷新令牌无效或已过期"
// @Router /v1/auth/refresh [post]
func (mgr *AuthMgr) RefreshToken(c *gin.Context) {
	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "missing refresh token")
		return
	}
	userID, err := mgr.tokenMgr.CheckRefreshToken(cookie)
	if err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	// 刷新令牌不携带角色，重新读库保证降权在刷新时立即生效
	var user model.User
	if err := mgr.db.WithContext(c).First(&user, userID).Error; err != nil {
		resputil.HTTPError(c, http.StatusUnauthorized, "User not found")
		return
	}
	if user.Status != model.StatusActive {
		resputil.HTTPError(c, http.StatusUnauthorized, "User is not active")
		return
	}

	mgr.issueTokens(c, &user)
}

// Logout godoc
// @Summary 退出登录
// @Description 清除刷新令牌 Cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} resputil.Envelope "退出成功"
// @Router /v1/auth/logout [post]
func (mgr *AuthMgr) Logout(c *gin.Context) {
	mgr.clearRefreshCookie(c)
	resputil.Message(c, "logged out")
}
