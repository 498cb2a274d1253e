package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"takeout/internal/config"
)

const sessionURL = "https://api.weixin.qq.com/sns/jscode2session"

// Client はミニプログラムのログインコードをopenidに引き換える。
type Client struct {
	appID     string
	appSecret string
	http      *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		appID:     cfg.WechatAppID,
		appSecret: cfg.WechatAppSecret,
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

type sessionResponse struct {
	OpenID  string `json:"openid"`
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (c *Client) CodeToOpenID(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("appid", c.appID)
	q.Set("secret", c.appSecret)
	q.Set("js_code", code)
	q.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sessionURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var body sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.ErrCode != 0 || body.OpenID == "" {
		return "", fmt.Errorf("wechat code exchange failed: %d %s", body.ErrCode, body.ErrMsg)
	}

	return body.OpenID, nil
}
