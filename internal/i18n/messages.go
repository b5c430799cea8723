package i18n

var messages = map[string]map[string]string{
	LangZH: {
		"login.success":   "登录成功",
		"login.failed":    "登录失败",
		"logout.success":  "已退出登录",
		"redeem.success":  "兑换成功",
		"redeem.failed":   "兑换失败",
		"points.balance":  "积分余额",
		"request.failed":  "请求失败",
		"network.error":   "无法连接服务器",
		"access.denied":   "没有权限",
		"session.expired": "登录已过期，请重新登录",
		"orders.updated":  "订单状态已更新",
		"phone.updated":   "手机号已更新",
	},
	LangEN: {
		"login.success":   "Logged in",
		"login.failed":    "Login failed",
		"logout.success":  "Logged out",
		"redeem.success":  "Redemption successful",
		"redeem.failed":   "Redemption failed",
		"points.balance":  "Points balance",
		"request.failed":  "Request failed",
		"network.error":   "Could not reach the server",
		"access.denied":   "Access denied",
		"session.expired": "Session expired, please log in again",
		"orders.updated":  "Order status updated",
		"phone.updated":   "Phone number updated",
	},
}

// T looks a key up for lang, falling back to zh, then to the key itself.
func T(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := messages[LangZH][key]; ok {
		return v
	}
	return key
}
