package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "weblarek/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// a :memory: database lives per connection
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the demo catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL CHECK (category IN ('софт-скил','хард-скил','кнопка','дополнительное','другое')),
  price INTEGER NULL CHECK (price IS NULL OR price >= 0),
  position INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  payment TEXT NOT NULL,
  address TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  total INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  position   INTEGER NOT NULL,
  price      INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "seed.products", map[string]any{"count": 10})

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO products(id,title,description,image,category,price,position) VALUES
	  ('854cef69-976d-4c2a-a18c-2aa45046c390','+1 час в сутках','Если планируете решать задачи в тренажёре, берите два.','/5_Dots.svg','софт-скил',750,1),
	  ('c101ab44-ed99-4a54-990d-47aa2bb4e7d9','HEX-леденец','Лизните этот леденец, чтобы мгновенно запоминать и узнавать любой цветовой код CSS.','/Shell.svg','другое',1450,2),
	  ('b06cde61-912f-4663-9751-09956c0eed67','Мамка-таймер','Будет стоять над душой и не давать прокрастинировать.','/Asterisk_2.svg','софт-скил',NULL,3),
	  ('412bcf81-7e75-4e70-bdb9-d3c73c9803b7','Фреймворк куки судьбы','Дайте судьбе шанс: откройте печенье с предсказанием.','/Soft_Flower.svg','дополнительное',2500,4),
	  ('1c521d84-c48d-48fa-8cfb-9d911fa515fd','Кнопка «Замьютить кота»','Если орёт кот, нажмите кнопку.','/mute-cat.svg','кнопка',2000,5),
	  ('f3867296-45c7-4603-bd34-29cea3a061d5','БЭМ-пилюлька','Чтобы научиться правильно называть модификаторы, без этого не обойтись.','/Pill.svg','другое',1500,6),
	  ('54df7dcb-1213-4b3c-ab61-92ed5f845535','Портативный телепорт','Измените локацию для поиска работы.','/Polygon.svg','другое',100000,7),
	  ('6a834fb8-350a-440c-ab55-d0e9b959b6e3','Микровселенная в кармане','Даст время для изучения React, ООП и бэкенда.','/Butterfly.svg','другое',750,8),
	  ('48e86fc0-ca99-4e13-b164-b98d65928b53','UI/UX-карандаш','Очень полезный навык для фронтендера.','/Leaf.svg','хард-скил',10000,9),
	  ('90973ae5-285c-4b6f-a6d0-65d1d760b102','Бэкенд-антистресс','Сжимайте его, когда сервер опять упал.','/Mithosis.svg','другое',1000,10)`)

	return tx.Commit()
}
