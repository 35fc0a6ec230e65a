// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı bir ürünü puanlar → HTTP PUT → Service → DB kayıt
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i tüm bağlı client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 5. Frontend event'i alır ve ürün kartındaki puanı günceller
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "rating_update", "heartbeat" vb.
// Data: Event'e özgü payload — ürün objesi, blog bilgisi vb.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt — "seni duydum"

	OpProductCreate = "product_create" // Yeni ürün eklendi
	OpProductUpdate = "product_update" // Ürün güncellendi
	OpProductDelete = "product_delete" // Ürün silindi

	// rating_update: Bir ürünün total_rating'i yeniden hesaplandı.
	// Payload ürünün id'sini ve yeni total_rating değerini taşır —
	// açık ürün sayfaları puanı anında tazeler.
	OpRatingUpdate = "rating_update"

	OpBlogCreate = "blog_create" // Yeni blog yazısı eklendi
	OpBlogUpdate = "blog_update" // Blog yazısı güncellendi
	OpBlogDelete = "blog_delete" // Blog yazısı silindi

	// blog_reaction_update: Bir blogun like/dislike sayıları değişti.
	OpBlogReactionUpdate = "blog_reaction_update"

	OpCouponCreate = "coupon_create" // Yeni kupon tanımlandı
	OpCouponDelete = "coupon_delete" // Kupon silindi
)

// ReadyData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
type ReadyData struct {
	OnlineUserIDs []string `json:"online_user_ids"`
}

// RatingUpdateData, rating_update event'inin payload'ı.
type RatingUpdateData struct {
	ProductID   string `json:"product_id"`
	TotalRating int    `json:"total_rating"`
	RatingCount int    `json:"rating_count"`
}

// BlogReactionUpdateData, blog_reaction_update event'inin payload'ı.
type BlogReactionUpdateData struct {
	BlogID   string `json:"blog_id"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	ActorID  string `json:"actor_id"`
}
