package fixture

import "html/template"

const headerPartial = `<header>
  <form action="/search" method="get" class="search-form">
    <input id="header-search-bar-input" type="search" name="q" placeholder="Ce cauți azi?">
    <button type="submit">Caută</button>
  </form>
  <a href="/checkout" class="cart-link"><svg width="20" height="20" viewBox="0 0 20 20" aria-hidden="true"><path d="M2 2h16v16H2z"/></svg>{{if gt .Badge 0}}<span class="cart-badge">{{.Badge}}</span>{{end}}</a>
</header>`

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="ro">
<head><meta charset="utf-8"><title>Mega Fixture</title></head>
<body>
` + headerPartial + `
<div id="cookie-banner" role="dialog">
  <p>Folosim cookie-uri pentru a îmbunătăți experiența ta.</p>
  <button onclick="document.getElementById('cookie-banner').remove()">Acceptă toate</button>
</div>
<main>
  <h1>Bine ai venit</h1>
  <p>Caută produse folosind bara de sus.</p>
</main>
</body>
</html>`))

var searchTemplate = template.Must(template.New("search").Parse(`<!DOCTYPE html>
<html lang="ro">
<head><meta charset="utf-8"><title>Rezultate</title></head>
<body>
` + headerPartial + `
<main>
  <h2>Rezultate pentru „{{.Query}}”</h2>
  <article class="banner">Livrare gratuită la prima comandă</article>
  {{range .Cards}}
  <article class="product-card">
    <img src="/img/{{.ID}}.png" alt="{{.Name}}">
    <h3 data-testid="styled-title">{{.Name}}</h3>
    <div class="price" data-testid="product-price">{{.PriceText}}</div>
    <form method="post" action="/cart/add">
      <input type="hidden" name="id" value="{{.ID}}">
      <input type="hidden" name="back" value="/search?q={{.Query}}">
      <button type="submit" data-testid="product-block-add">Adaugă în coș</button>
    </form>
  </article>
  {{end}}
</main>
</body>
</html>`))

var checkoutTemplate = template.Must(template.New("checkout").Parse(`<!DOCTYPE html>
<html lang="ro">
<head><meta charset="utf-8"><title>Coșul meu</title></head>
<body>
` + headerPartial + `
<main>
  <h2>Coșul meu</h2>
  <span class="cart-count">{{.Count}} produse</span>
  <ul class="cart-items">
    {{range .Rows}}
    <li class="cart-item">
      <img src="/img/{{.Code}}.png" alt="{{.Name}}">
      <h3>{{.Name}}</h3>
      <span class="unit-price">{{.UnitPriceText}} Lei/{{.Unit}}</span>
      <input type="number" role="spinbutton" min="1" value="{{.Quantity}}">
      <span class="line-ref">{{.BaniTotal}}Lei{{.Code}}</span>
    </li>
    {{end}}
    <li class="promo-item">
      <img src="/img/promo.png" alt="Mega Promoția Săptămânii">
      <h3>Mega Promoția Săptămânii</h3>
      <span>Oferte speciale de la 1,99 Lei/buc în fiecare zi</span>
    </li>
  </ul>
  <section class="summary">
    <div class="subtotal-row">Subtotal: {{.SubtotalText}}</div>
    <div class="discount-row">Reducere: {{.DiscountText}}</div>
    <div class="cart-total">{{.TotalText}}</div>
  </section>
</main>
</body>
</html>`))
