package fetch

// areasQuery pages through leaf areas together with their climbs.
// The cursor of each request comes from the previous response, so
// pages are fetched strictly in order.
const areasQuery = `
query AreasPage($tokens: [String!], $cursor: String, $pageSize: Int!) {
  areasPage(
    filter: {leafStatus: {isLeaf: true}, pathTokens: {tokens: $tokens}}
    cursor: $cursor
    pageSize: $pageSize
  ) {
    nextCursor
    areas {
      uuid
      areaName
      pathTokens
      metadata {
        lat
        lng
      }
      climbs {
        uuid
        name
        fa
        length
        boltsCount
        safety
        grades {
          yds
          vscale
          french
          ewbank
          uiaa
          za
          british
        }
        type {
          sport
          trad
          bouldering
          alpine
          tr
          mixed
          ice
          snow
          aid
        }
        metadata {
          lat
          lng
          elevation
        }
        content {
          description
          location
          protection
        }
        pathTokens
      }
    }
  }
}`
