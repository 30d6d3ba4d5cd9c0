package form

// セッションに置く到達マーカー。確認ページは一度読んだら破棄する。
const (
	markerKey   = "fromContact"
	markerValue = "true"
)

// Guard は確認ページへの直接アクセスを防ぐナビゲーションガード。
// フォーム送信成功時に置かれたマーカーを消費できた場合だけ表示を許可する。
type Guard struct {
	session SessionStore
}

// NewGuard はガードを生成する。
func NewGuard(session SessionStore) *Guard {
	return &Guard{session: session}
}

// Enter は確認ページへの進入判定を行う。マーカーがあれば消費して表示を許可し、
// なければお問い合わせフォームへのリダイレクト先を返す。
// マーカーは読み取りと同時に破棄されるため、リロードや再訪問では弾かれる。
func (g *Guard) Enter() (route string, allowed bool) {
	if v, ok := g.session.Get(markerKey); ok && v == markerValue {
		g.session.Delete(markerKey)
		return RouteThanks, true
	}
	return RouteContact, false
}
